package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/models"
	"github.com/SscSPs/ledger_reconciler/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(db dbtx) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountReader
var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

const accountSelectQuery = `
SELECT
	a.account_id, a.company_id, a.code, a.name, a.account_type, a.sub_type, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by, a.version
FROM chart_of_accounts a
`

func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	rows, err := r.DB.Query(ctx, accountSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// ListAccountsByCompany returns the company's chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	return r.getAccounts(ctx, "WHERE a.company_id = $1 ORDER BY a.code, a.account_id", companyID)
}

// FindAccountsByIDs retrieves the company's accounts among accountIDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := r.getAccounts(ctx, "WHERE a.company_id = $1 AND a.account_id = ANY($2)", companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	return accountsMap, nil
}
