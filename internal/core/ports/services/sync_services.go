package services

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
)

// DocumentSynchronizerSvc propagates ledger edits to source documents.
type DocumentSynchronizerSvc interface {
	// Synchronize applies the edit best-effort. Each failed write becomes a SyncWarning.
	Synchronize(ctx context.Context, entry domain.JournalEntry, oldLines, newLines []domain.JournalLine) []domain.SyncWarning

	// SynchronizeStrict applies the edit through docs and fails on the first batch of write errors.
	// It is used inside a unit of work so a failure rolls the ledger edit back.
	SynchronizeStrict(ctx context.Context, docs portsrepo.DocumentRepositoryFacade, entry domain.JournalEntry, oldLines, newLines []domain.JournalLine) error
}
