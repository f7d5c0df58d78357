package dto

import (
	"time"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateLinesRequest asks for an entry's lines to be derived from its source document.
// ReferenceKind and ReferenceID are optional; when set they must match the entry.
type GenerateLinesRequest struct {
	EntryID       string               `json:"-"`
	CompanyID     string               `json:"-"`
	ReferenceKind domain.ReferenceKind `json:"referenceKind,omitempty"`
	ReferenceID   string               `json:"referenceID,omitempty"`
}

// EditLineRequest is one proposed line of an edited entry.
type EditLineRequest struct {
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// SaveEditRequest replaces an entry's header and lines.
type SaveEditRequest struct {
	CompanyID       string            `json:"-"`
	EntryID         string            `json:"-"`
	EntryDate       *time.Time        `json:"entryDate"`
	Description     string            `json:"description" binding:"max=1000"`
	BranchID        *string           `json:"branchID"`
	CostCenterID    *string           `json:"costCenterID"`
	Lines           []EditLineRequest `json:"lines"`
	Reason          string            `json:"reason" binding:"max=2000"`
	ExpectedVersion int64             `json:"expectedVersion" binding:"min=0"`
}

// Header extracts the editable header fields.
func (r SaveEditRequest) Header() domain.EntryHeader {
	h := domain.EntryHeader{
		Description:  r.Description,
		BranchID:     r.BranchID,
		CostCenterID: r.CostCenterID,
	}
	if r.EntryDate != nil {
		h.EntryDate = *r.EntryDate
	}
	return h
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	CompanyID     string                `json:"companyID"`
	EntryDate     time.Time             `json:"entryDate"`
	Description   string                `json:"description"`
	ReferenceKind string                `json:"referenceKind,omitempty"`
	ReferenceID   string                `json:"referenceID,omitempty"`
	BranchID      *string               `json:"branchID,omitempty"`
	CostCenterID  *string               `json:"costCenterID,omitempty"`
	Version       int64                 `json:"version"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
	Lines         []JournalLineResponse `json:"lines"`
}

// GenerateLinesResponse is returned by the generate endpoint.
type GenerateLinesResponse struct {
	EntryID string                `json:"entryID"`
	Outcome string                `json:"outcome"` // created or noop
	Lines   []JournalLineResponse `json:"lines"`
}

// SyncWarningResponse describes a source document that could not be updated.
type SyncWarningResponse struct {
	Target   string `json:"target"`
	TargetID string `json:"targetID"`
	Message  string `json:"message"`
}

// SaveEditResponse is returned by a committed edit.
type SaveEditResponse struct {
	Entry         JournalEntryResponse  `json:"entry"`
	AuditRecorded bool                  `json:"auditRecorded"`
	SyncWarnings  []SyncWarningResponse `json:"syncWarnings"`
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return responses
}

// ToJournalEntryResponse converts an entry and its lines to a response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry, lines []domain.JournalLine) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		ReferenceKind: string(e.ReferenceKind),
		ReferenceID:   e.ReferenceID,
		BranchID:      e.BranchID,
		CostCenterID:  e.CostCenterID,
		Version:       e.Version,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
		Lines:         ToJournalLineResponses(lines),
	}
}

// ToGenerateLinesResponse converts a generation result to a response DTO.
func ToGenerateLinesResponse(r *domain.GenerateLinesResult) GenerateLinesResponse {
	return GenerateLinesResponse{
		EntryID: r.EntryID,
		Outcome: string(r.Outcome),
		Lines:   ToJournalLineResponses(r.Lines),
	}
}

// ToSaveEditResponse converts an edit result to a response DTO.
func ToSaveEditResponse(r *domain.SaveEditResult) SaveEditResponse {
	warnings := make([]SyncWarningResponse, len(r.SyncWarnings))
	for i, w := range r.SyncWarnings {
		warnings[i] = SyncWarningResponse{
			Target:   string(w.Target),
			TargetID: w.TargetID,
			Message:  w.Error(),
		}
	}
	return SaveEditResponse{
		Entry:         ToJournalEntryResponse(&r.Entry, r.Lines),
		AuditRecorded: r.AuditRecorded,
		SyncWarnings:  warnings,
	}
}
