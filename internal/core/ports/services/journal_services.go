package services

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
)

// LineGeneratorSvc derives journal lines from an entry's source document.
type LineGeneratorSvc interface {
	// GenerateLines creates the entry's lines once. Later calls are no-ops.
	GenerateLines(ctx context.Context, req dto.GenerateLinesRequest) (*domain.GenerateLinesResult, error)
}

// EntryEditorSvc validates and persists owner edits of posted entries.
type EntryEditorSvc interface {
	SaveEdit(ctx context.Context, req dto.SaveEditRequest, actor domain.Actor) (*domain.SaveEditResult, error)
}

// EntryReaderSvc reads entries for members of a company.
type EntryReaderSvc interface {
	GetEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, []domain.JournalLine, error)
}
