package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// AuditReader defines read operations for audit records.
type AuditReader interface {
	// ListAuditRecordsByEntry returns an entry's records oldest first.
	ListAuditRecordsByEntry(ctx context.Context, entryID string) ([]domain.AuditRecord, error)

	// FindLatestAuditRecord returns the newest record of an entry, or ErrNotFound.
	FindLatestAuditRecord(ctx context.Context, entryID string) (*domain.AuditRecord, error)
}

// AuditWriter appends audit records. There is no update or delete.
type AuditWriter interface {
	AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error
}

// AuditRepositoryFacade combines audit read and write operations.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
