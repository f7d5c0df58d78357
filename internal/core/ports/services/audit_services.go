package services

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// AuditRecorderSvc appends audit records for ledger edits.
type AuditRecorderSvc interface {
	// Record chains and appends the record, returning it as stored.
	Record(ctx context.Context, record domain.AuditRecord) (*domain.AuditRecord, error)
}

// AuditReaderSvc reads and verifies an entry's audit trail.
type AuditReaderSvc interface {
	ListAuditRecords(ctx context.Context, companyID, entryID, userID string) ([]domain.AuditRecord, error)
	VerifyAuditTrail(ctx context.Context, companyID, entryID, userID string) (*domain.AuditVerification, error)
}

// AuditLoggerSvc combines audit recording and reading.
type AuditLoggerSvc interface {
	AuditRecorderSvc
	AuditReaderSvc
}
