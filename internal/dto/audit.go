package dto

import (
	"time"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// AuditRecordResponse defines the data returned for an audit record.
type AuditRecordResponse struct {
	AuditID        string                `json:"auditID"`
	EntryID        string                `json:"entryID"`
	ActorID        string                `json:"actorID"`
	ActorEmail     string                `json:"actorEmail"`
	ActorName      string                `json:"actorName"`
	ReferenceLabel string                `json:"referenceLabel"`
	OldLines       []domain.LineSnapshot `json:"oldLines"`
	NewLines       []domain.LineSnapshot `json:"newLines"`
	Reason         string                `json:"reason"`
	CreatedAt      time.Time             `json:"createdAt"`
	Hash           string                `json:"hash"`
}

// ListAuditRecordsResponse wraps an entry's audit trail.
type ListAuditRecordsResponse struct {
	Records []AuditRecordResponse `json:"records"`
}

// ToListAuditRecordsResponse converts audit records to a response DTO.
func ToListAuditRecordsResponse(records []domain.AuditRecord) ListAuditRecordsResponse {
	out := make([]AuditRecordResponse, len(records))
	for i, r := range records {
		out[i] = AuditRecordResponse{
			AuditID:        r.AuditID,
			EntryID:        r.EntryID,
			ActorID:        r.ActorID,
			ActorEmail:     r.ActorEmail,
			ActorName:      r.ActorName,
			ReferenceLabel: r.ReferenceLabel,
			OldLines:       r.OldLines,
			NewLines:       r.NewLines,
			Reason:         r.Reason,
			CreatedAt:      r.CreatedAt,
			Hash:           r.Hash,
		}
	}
	return ListAuditRecordsResponse{Records: out}
}
