package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/models"
)

// ToModelAuditRecord converts a domain AuditRecord to a row, encoding line snapshots as JSON.
func ToModelAuditRecord(d domain.AuditRecord) (models.AuditRecord, error) {
	oldLines, err := json.Marshal(nonNilSnapshots(d.OldLines))
	if err != nil {
		return models.AuditRecord{}, fmt.Errorf("encode old lines: %w", err)
	}
	newLines, err := json.Marshal(nonNilSnapshots(d.NewLines))
	if err != nil {
		return models.AuditRecord{}, fmt.Errorf("encode new lines: %w", err)
	}
	return models.AuditRecord{
		AuditID:        d.AuditID,
		EntryID:        d.EntryID,
		CompanyID:      d.CompanyID,
		ActorID:        d.ActorID,
		ActorEmail:     d.ActorEmail,
		ActorName:      d.ActorName,
		ReferenceLabel: d.ReferenceLabel,
		OldLines:       oldLines,
		NewLines:       newLines,
		Reason:         d.Reason,
		CreatedAt:      d.CreatedAt,
		PrevHash:       d.PrevHash,
		Hash:           d.Hash,
	}, nil
}

// ToDomainAuditRecord converts a row to a domain AuditRecord.
func ToDomainAuditRecord(m models.AuditRecord) (domain.AuditRecord, error) {
	d := domain.AuditRecord{
		AuditID:        m.AuditID,
		EntryID:        m.EntryID,
		CompanyID:      m.CompanyID,
		ActorID:        m.ActorID,
		ActorEmail:     m.ActorEmail,
		ActorName:      m.ActorName,
		ReferenceLabel: m.ReferenceLabel,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
		PrevHash:       m.PrevHash,
		Hash:           m.Hash,
	}
	if err := json.Unmarshal(m.OldLines, &d.OldLines); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("decode old lines of %s: %w", m.AuditID, err)
	}
	if err := json.Unmarshal(m.NewLines, &d.NewLines); err != nil {
		return domain.AuditRecord{}, fmt.Errorf("decode new lines of %s: %w", m.AuditID, err)
	}
	return d, nil
}

func nonNilSnapshots(s []domain.LineSnapshot) []domain.LineSnapshot {
	if s == nil {
		return []domain.LineSnapshot{}
	}
	return s
}
