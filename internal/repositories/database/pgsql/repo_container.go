package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(dbPool)
}

func newRepositoryProvider(db dbtx) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(db),
		JournalRepo:    newPgxJournalRepository(db),
		DocumentRepo:   newPgxDocumentRepository(db),
		AuditRepo:      newPgxAuditRepository(db),
		MembershipRepo: newPgxMembershipRepository(db),
	}
}

// PgxUnitOfWork binds a fresh set of repositories to one transaction per call.
type PgxUnitOfWork struct {
	BaseRepository
}

// NewUnitOfWork creates a UnitOfWork backed by the pool.
func NewUnitOfWork(dbPool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{DB: dbPool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTx commits when fn returns nil and rolls back otherwise.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(repos portsrepo.RepositoryProvider) error) error {
	return u.withTx(ctx, func(tx pgx.Tx) error {
		return fn(newRepositoryProvider(tx))
	})
}
