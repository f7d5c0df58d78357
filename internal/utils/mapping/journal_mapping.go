package mapping

import (
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		CompanyID:    d.CompanyID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		BranchID:     d.BranchID,
		CostCenterID: d.CostCenterID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.ReferenceKind != domain.RefNone {
		kind := string(d.ReferenceKind)
		m.ReferenceKind = &kind
	}
	if d.ReferenceID != "" {
		id := d.ReferenceID
		m.ReferenceID = &id
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
// Unknown stored kinds are kept verbatim so dispatch can report them.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		CompanyID:    m.CompanyID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		BranchID:     m.BranchID,
		CostCenterID: m.CostCenterID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ReferenceKind != nil {
		d.ReferenceKind = domain.ReferenceKind(*m.ReferenceKind)
	}
	if m.ReferenceID != nil {
		d.ReferenceID = *m.ReferenceID
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine at position lineNo.
func ToModelJournalLine(d domain.JournalLine, lineNo int) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      lineNo,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

// ToDomainJournalLineSlice converts model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
