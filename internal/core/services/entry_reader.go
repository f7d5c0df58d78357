package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
)

type entryReader struct {
	BaseService
	journalRepo portsrepo.JournalReader
}

// NewEntryReader creates an EntryReaderSvc for company members.
func NewEntryReader(journalRepo portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.EntryReaderSvc {
	return &entryReader{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		journalRepo: journalRepo,
	}
}

var _ portssvc.EntryReaderSvc = (*entryReader)(nil)

func (s *entryReader) GetEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal entry", slog.String("entry_id", entryID))
		}
		return nil, nil, err
	}
	if entry.CompanyID != companyID {
		return nil, nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: entryID}
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("entry_id", entryID))
		return nil, nil, err
	}
	return entry, lines, nil
}
