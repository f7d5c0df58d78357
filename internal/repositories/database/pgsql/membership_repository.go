package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/models"
	"github.com/SscSPs/ledger_reconciler/internal/utils/mapping"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(db dbtx) *PgxMembershipRepository {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.MembershipReader = (*PgxMembershipRepository)(nil)

// FindCompanyMember returns the membership, or ErrNotFound if the user is not a member.
func (r *PgxMembershipRepository) FindCompanyMember(ctx context.Context, companyID, userID string) (*domain.CompanyMember, error) {
	query := `
		SELECT company_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by, version
		FROM company_members
		WHERE company_id = $1 AND user_id = $2;
	`
	rows, err := r.DB.Query(ctx, query, companyID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query company membership", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CompanyMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company membership", err)
	}
	member := mapping.ToDomainCompanyMember(m)
	return &member, nil
}
