package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/models"
	"github.com/SscSPs/ledger_reconciler/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db dbtx) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditSelectQuery = `
SELECT audit_id, entry_id, company_id, actor_id, actor_email, actor_name, reference_label,
	old_lines, new_lines, reason, created_at, prev_hash, hash
FROM journal_audit_records
`

func (r *PgxAuditRepository) getAuditRecords(ctx context.Context, filterQuery string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := r.DB.Query(ctx, auditSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	modelRecords, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditRecord])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect audit rows", err)
	}
	records := make([]domain.AuditRecord, 0, len(modelRecords))
	for _, m := range modelRecords {
		rec, err := mapping.ToDomainAuditRecord(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode audit record", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListAuditRecordsByEntry returns an entry's records in chain order.
func (r *PgxAuditRepository) ListAuditRecordsByEntry(ctx context.Context, entryID string) ([]domain.AuditRecord, error) {
	return r.getAuditRecords(ctx, "WHERE entry_id = $1 ORDER BY seq;", entryID)
}

func (r *PgxAuditRepository) FindLatestAuditRecord(ctx context.Context, entryID string) (*domain.AuditRecord, error) {
	records, err := r.getAuditRecords(ctx, "WHERE entry_id = $1 ORDER BY seq DESC LIMIT 1;", entryID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &apperrors.NotFoundError{Resource: "audit_record", Key: entryID}
	}
	return &records[0], nil
}

// AppendAuditRecord inserts a record. The unique prev_hash constraint rejects a
// second record claiming the same predecessor.
func (r *PgxAuditRepository) AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	m, err := mapping.ToModelAuditRecord(record)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit record", err)
	}
	query := `
		INSERT INTO journal_audit_records (
			audit_id, entry_id, company_id, actor_id, actor_email, actor_name, reference_label,
			old_lines, new_lines, reason, created_at, prev_hash, hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.DB.Exec(ctx, query,
		m.AuditID,
		m.EntryID,
		m.CompanyID,
		m.ActorID,
		m.ActorEmail,
		m.ActorName,
		m.ReferenceLabel,
		m.OldLines,
		m.NewLines,
		m.Reason,
		m.CreatedAt,
		m.PrevHash,
		m.Hash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return apperrors.NewAppError(409, "audit chain of entry "+m.EntryID+" advanced concurrently", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to append audit record "+m.AuditID, err)
	}
	return nil
}
