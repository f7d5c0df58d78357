package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/utils/accounting"
)

// entryEditor applies owner edits to posted entries.
type entryEditor struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	audit        portssvc.AuditRecorderSvc
	synchronizer portssvc.DocumentSynchronizerSvc
	uow          portsrepo.UnitOfWork
	mode         domain.SyncMode
	metrics      *metrics.ReconMetrics
	now          func() time.Time
	newID        func() string
}

// EditorOption is a functional option for configuring the entry editor
type EditorOption func(*entryEditor)

// WithEditorAuthorizer sets the company authorizer used for the owner check
func WithEditorAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) EditorOption {
	return func(s *entryEditor) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithAtomicSync runs the ledger write and document sync in one unit of work
func WithAtomicSync(uow portsrepo.UnitOfWork) EditorOption {
	return func(s *entryEditor) {
		s.uow = uow
		s.mode = domain.SyncAtomic
	}
}

// WithEditorMetrics records edit outcomes
func WithEditorMetrics(m *metrics.ReconMetrics) EditorOption {
	return func(s *entryEditor) {
		s.metrics = m
	}
}

// NewEntryEditor creates an EntryEditorSvc. Without WithAtomicSync documents are synced best-effort.
func NewEntryEditor(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	audit portssvc.AuditRecorderSvc,
	synchronizer portssvc.DocumentSynchronizerSvc,
	options ...EditorOption,
) portssvc.EntryEditorSvc {
	svc := &entryEditor{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		audit:        audit,
		synchronizer: synchronizer,
		mode:         domain.SyncBestEffort,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntryEditorSvc = (*entryEditor)(nil)

func (s *entryEditor) SaveEdit(ctx context.Context, req dto.SaveEditRequest, actor domain.Actor) (*domain.SaveEditResult, error) {
	result, err := s.saveEdit(ctx, req, actor)
	s.metrics.IncEdit(editOutcome(err))
	return result, err
}

func (s *entryEditor) saveEdit(ctx context.Context, req dto.SaveEditRequest, actor domain.Actor) (*domain.SaveEditResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("entry_id", req.EntryID),
		slog.String("company_id", req.CompanyID),
		slog.String("user_id", actor.UserID))

	entry, err := s.journalRepo.FindEntryByID(ctx, req.EntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load journal entry", slog.String("error", err.Error()))
		}
		return nil, err
	}
	if entry.CompanyID != req.CompanyID {
		return nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: req.EntryID}
	}

	// Protected entries are refused whoever the actor is.
	if entry.ReferenceKind.IsProtected() {
		logger.Warn("Rejected edit of protected entry", slog.String("reference", entry.ReferenceLabel()))
		return nil, &apperrors.PermissionError{
			Kind:   apperrors.Protected,
			Detail: "entries posted from " + string(entry.ReferenceKind) + " are changed through the source document",
		}
	}
	if err := s.AuthorizeUser(ctx, actor.UserID, entry.CompanyID, domain.RoleOwner); err != nil {
		if isAuthorizationFailure(err) {
			return nil, &apperrors.PermissionError{Kind: apperrors.NotOwner, Detail: "only company owners may edit posted entries"}
		}
		return nil, err
	}

	lines, err := s.validate(ctx, entry.CompanyID, req)
	if err != nil {
		logger.Info("Rejected invalid edit", slog.String("error", err.Error()))
		return nil, err
	}

	oldLines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to load current lines", slog.String("error", err.Error()))
		return nil, err
	}

	updated := entry.ApplyHeader(req.Header())
	updated.LastUpdatedAt = s.now().UTC()
	updated.LastUpdatedBy = actor.UserID
	for i := range lines {
		lines[i].LineID = s.newID()
		lines[i].EntryID = entry.EntryID
	}

	saved, err := s.persist(ctx, updated, oldLines, lines, req.ExpectedVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Edit lost a concurrent update", slog.Int64("expected_version", req.ExpectedVersion))
		} else {
			logger.Error("Failed to persist edit", slog.String("error", err.Error()))
		}
		return nil, err
	}
	logger.Info("Journal entry edited",
		slog.String("reference", saved.ReferenceLabel()),
		slog.Int("line_count", len(lines)),
		slog.Int64("version", saved.Version))

	result := &domain.SaveEditResult{Entry: *saved, Lines: lines}
	result.AuditRecorded = s.recordAudit(ctx, *saved, actor, oldLines, lines, req.Reason)
	if s.mode != domain.SyncAtomic {
		result.SyncWarnings = s.synchronizer.Synchronize(ctx, *saved, oldLines, lines)
	}
	return result, nil
}

// validate checks the proposed lines in order and returns them normalized.
func (s *entryEditor) validate(ctx context.Context, companyID string, req dto.SaveEditRequest) ([]domain.JournalLine, error) {
	if len(req.Lines) == 0 {
		return nil, apperrors.NewValidationError(apperrors.EmptyLines, "an entry needs at least one line")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError(apperrors.ReasonRequired, "an edit reason is required")
	}

	ids := make([]string, 0, len(req.Lines))
	seen := make(map[string]struct{}, len(req.Lines))
	for i, l := range req.Lines {
		if l.AccountID == "" {
			return nil, apperrors.NewValidationError(apperrors.InvalidAccount, "line %d has no account", i+1)
		}
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return nil, apperrors.NewValidationError(apperrors.InvalidAccount, "line %d references unknown account %s", i+1, l.AccountID)
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError(apperrors.InvalidAccount, "line %d references inactive account %s", i+1, l.AccountID)
		}
		lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: strings.TrimSpace(l.Description),
		}
	}

	lines, err = accounting.NormalizeLines(lines)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// persist replaces the entry. In atomic mode the source documents are updated in the same transaction.
func (s *entryEditor) persist(ctx context.Context, entry domain.JournalEntry, oldLines, lines []domain.JournalLine, expectedVersion int64) (*domain.JournalEntry, error) {
	if s.mode != domain.SyncAtomic || s.uow == nil {
		saved, err := s.journalRepo.ReplaceEntry(ctx, entry, lines, expectedVersion)
		if err != nil {
			return nil, persistenceError("replace_entry", err)
		}
		return saved, nil
	}

	var saved *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		var err error
		saved, err = repos.JournalRepo.ReplaceEntry(ctx, entry, lines, expectedVersion)
		if err != nil {
			return persistenceError("replace_entry", err)
		}
		if err := s.synchronizer.SynchronizeStrict(ctx, repos.DocumentRepo, *saved, oldLines, lines); err != nil {
			return &apperrors.PersistenceError{Op: "synchronize", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("commit", err)
	}
	return saved, nil
}

// recordAudit appends the audit record. A failure is logged and counted but never undoes the edit.
func (s *entryEditor) recordAudit(ctx context.Context, entry domain.JournalEntry, actor domain.Actor, oldLines, newLines []domain.JournalLine, reason string) bool {
	_, err := s.audit.Record(ctx, domain.AuditRecord{
		EntryID:        entry.EntryID,
		CompanyID:      entry.CompanyID,
		ActorID:        actor.UserID,
		ActorEmail:     actor.Email,
		ActorName:      actor.Name,
		ReferenceLabel: entry.ReferenceLabel(),
		OldLines:       domain.SnapshotLines(oldLines),
		NewLines:       domain.SnapshotLines(newLines),
		Reason:         strings.TrimSpace(reason),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record audit trail for committed edit",
			slog.String("entry_id", entry.EntryID),
			slog.String("user_id", actor.UserID))
		s.metrics.IncAuditFailure()
		return false
	}
	return true
}

// persistenceError keeps conflict, not-found and already-wrapped errors as they are.
func persistenceError(op string, err error) error {
	var pErr *apperrors.PersistenceError
	if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) || errors.As(err, &pErr) {
		return err
	}
	return &apperrors.PersistenceError{Op: op, Err: err}
}

func editOutcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, apperrors.ErrPersistence):
		return "failed"
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
