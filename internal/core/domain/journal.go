package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the header of a posted double-entry journal entry.
type JournalEntry struct {
	EntryID       string        `json:"entryID"`
	CompanyID     string        `json:"companyID"`
	EntryDate     time.Time     `json:"entryDate"`
	Description   string        `json:"description"`
	ReferenceKind ReferenceKind `json:"referenceKind"` // Empty for manual entries
	ReferenceID   string        `json:"referenceID"`
	BranchID      *string       `json:"branchID"`
	CostCenterID  *string       `json:"costCenterID"`
	AuditFields
}

// HasReference reports whether the entry points at a source document.
func (e JournalEntry) HasReference() bool {
	return e.ReferenceKind != RefNone && e.ReferenceID != ""
}

// ReferenceLabel is a human readable "kind:id" label, or "manual".
func (e JournalEntry) ReferenceLabel() string {
	if !e.HasReference() {
		return "manual"
	}
	return string(e.ReferenceKind) + ":" + e.ReferenceID
}

// JournalLine is one debit or credit leg of a journal entry.
// After normalization exactly one of Debit/Credit is positive.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// IsDebit reports whether the line is a debit leg.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount is the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// EntryHeader holds the editable header fields of an entry.
type EntryHeader struct {
	EntryDate    time.Time
	Description  string
	BranchID     *string
	CostCenterID *string
}

// ApplyHeader returns a copy of the entry with the header fields replaced.
func (e JournalEntry) ApplyHeader(h EntryHeader) JournalEntry {
	if !h.EntryDate.IsZero() {
		e.EntryDate = h.EntryDate
	}
	e.Description = h.Description
	e.BranchID = h.BranchID
	e.CostCenterID = h.CostCenterID
	return e
}
