package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// JournalReader defines read operations for journal entries and their lines.
type JournalReader interface {
	// FindEntryByID retrieves an entry header by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in posting order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// HasLines reports whether any line exists for the entry.
	HasLines(ctx context.Context, entryID string) (bool, error)
}

// JournalWriter defines write operations for journal entries and their lines.
type JournalWriter interface {
	// InsertLinesIfAbsent inserts lines for an entry that has none yet.
	// It reports false without writing when lines already exist.
	InsertLinesIfAbsent(ctx context.Context, entryID string, lines []domain.JournalLine) (bool, error)

	// ReplaceEntry atomically replaces the header and all lines of an entry.
	// A non-zero expectedVersion must match the stored version or ErrConflict is returned.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, expectedVersion int64) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
