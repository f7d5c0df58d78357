package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/models"
	"github.com/SscSPs/ledger_reconciler/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(db dbtx) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, company_id, entry_date, description, reference_kind, reference_id,
	branch_id, cost_center_id, created_at, created_by, last_updated_at, last_updated_by, version`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, r.DB, "SELECT"+entryColumns+" FROM journal_entries WHERE entry_id = $1;", entryID)
}

func findEntry(ctx context.Context, q dbtx, query, entryID string) (*domain.JournalEntry, error) {
	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+entryID, err)
	}
	modelEntry, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: entryID}
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(modelEntry)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry in posting order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, line_no, account_id, debit, credit, description
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.DB.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect lines for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// HasLines reports whether any line exists for the entry.
func (r *PgxJournalRepository) HasLines(ctx context.Context, entryID string) (bool, error) {
	return hasLines(ctx, r.DB, entryID)
}

func hasLines(ctx context.Context, q dbtx, entryID string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM journal_lines WHERE entry_id = $1);", entryID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check lines for entry "+entryID, err)
	}
	return exists, nil
}

// InsertLinesIfAbsent locks the entry row, then inserts lines only if the entry has none.
// Concurrent generators for the same entry serialize on the lock, so at most one writes.
func (r *PgxJournalRepository) InsertLinesIfAbsent(ctx context.Context, entryID string, lines []domain.JournalLine) (bool, error) {
	inserted := false
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := findEntry(ctx, tx, "SELECT"+entryColumns+" FROM journal_entries WHERE entry_id = $1 FOR UPDATE;", entryID); err != nil {
			return err
		}
		exists, err := hasLines(ctx, tx, entryID)
		if err != nil || exists {
			return err
		}
		if err := insertLines(ctx, tx, entryID, lines); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// ReplaceEntry updates the header, bumps the version and swaps all lines in one transaction.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, expectedVersion int64) (*domain.JournalEntry, error) {
	modelEntry := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, branch_id = $4, cost_center_id = $5,
		    last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE entry_id = $1 AND ($8::bigint = 0 OR version = $8)
		RETURNING` + entryColumns + ";"

	var saved *domain.JournalEntry
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query,
			modelEntry.EntryID,
			modelEntry.EntryDate,
			modelEntry.Description,
			modelEntry.BranchID,
			modelEntry.CostCenterID,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
			expectedVersion,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
		}
		updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewAppError(500, "failed to read updated journal entry "+entry.EntryID, err)
			}
			// Either the entry is gone or another edit won the race.
			if _, findErr := findEntry(ctx, tx, "SELECT"+entryColumns+" FROM journal_entries WHERE entry_id = $1;", entry.EntryID); findErr != nil {
				return findErr
			}
			return fmt.Errorf("%w: journal entry %s is no longer at version %d", apperrors.ErrConflict, entry.EntryID, expectedVersion)
		}

		if _, err := tx.Exec(ctx, "DELETE FROM journal_lines WHERE entry_id = $1;", entry.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to delete lines of entry "+entry.EntryID, err)
		}
		if err := insertLines(ctx, tx, entry.EntryID, lines); err != nil {
			return err
		}
		d := mapping.ToDomainJournalEntry(updated)
		saved = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	for i, line := range lines {
		m := mapping.ToModelJournalLine(line, i+1)
		batch.Queue(insertLineQuery,
			m.LineID,
			entryID,
			m.LineNo,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entryID, err)
	}
	return nil
}
