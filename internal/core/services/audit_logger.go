package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/utils/audithash"
)

type auditLogger struct {
	BaseService
	auditRepo   portsrepo.AuditRepositoryFacade
	journalRepo portsrepo.JournalReader
	now         func() time.Time
	newID       func() string
}

// NewAuditLogger creates an AuditLoggerSvc. Reads are authorized through authorizer.
func NewAuditLogger(auditRepo portsrepo.AuditRepositoryFacade, journalRepo portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.AuditLoggerSvc {
	return &auditLogger{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		auditRepo:   auditRepo,
		journalRepo: journalRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

var _ portssvc.AuditLoggerSvc = (*auditLogger)(nil)

// Record links rec to the entry's latest record and appends it.
func (s *auditLogger) Record(ctx context.Context, rec domain.AuditRecord) (*domain.AuditRecord, error) {
	if rec.AuditID == "" {
		rec.AuditID = s.newID()
	}
	rec.CreatedAt = audithash.Timestamp(s.now())

	prevHash := ""
	latest, err := s.auditRepo.FindLatestAuditRecord(ctx, rec.EntryID)
	switch {
	case err == nil:
		prevHash = latest.Hash
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load latest audit record: %w", err)
	}

	hash, err := audithash.Compute(prevHash, rec)
	if err != nil {
		return nil, err
	}
	rec.PrevHash = prevHash
	rec.Hash = hash

	if err := s.auditRepo.AppendAuditRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to append audit record: %w", err)
	}
	s.LogDebug(ctx, "Audit record appended",
		slog.String("entry_id", rec.EntryID),
		slog.String("audit_id", rec.AuditID))
	return &rec, nil
}

func (s *auditLogger) ListAuditRecords(ctx context.Context, companyID, entryID, userID string) ([]domain.AuditRecord, error) {
	if err := s.authorizeEntryRead(ctx, companyID, entryID, userID); err != nil {
		return nil, err
	}
	records, err := s.auditRepo.ListAuditRecordsByEntry(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records", slog.String("entry_id", entryID))
		return nil, err
	}
	return records, nil
}

func (s *auditLogger) VerifyAuditTrail(ctx context.Context, companyID, entryID, userID string) (*domain.AuditVerification, error) {
	records, err := s.ListAuditRecords(ctx, companyID, entryID, userID)
	if err != nil {
		return nil, err
	}
	brokenAt, err := audithash.Verify(records)
	if err != nil {
		return nil, err
	}

	result := &domain.AuditVerification{
		EntryID: entryID,
		Records: len(records),
		Valid:   brokenAt < 0,
	}
	if len(records) > 0 {
		result.HeadHash = records[len(records)-1].Hash
	}
	if !result.Valid {
		result.BrokenAt = records[brokenAt].AuditID
		s.LogWarn(ctx, "Audit trail failed verification",
			slog.String("entry_id", entryID),
			slog.String("broken_at", result.BrokenAt))
	}
	return result, nil
}

// authorizeEntryRead checks read access and that the entry belongs to companyID.
func (s *auditLogger) authorizeEntryRead(ctx context.Context, companyID, entryID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.CompanyID != companyID {
		return &apperrors.NotFoundError{Resource: "journal_entry", Key: entryID}
	}
	return nil
}
