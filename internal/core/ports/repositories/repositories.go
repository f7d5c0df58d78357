package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo    AccountReader
	JournalRepo    JournalRepositoryFacade
	DocumentRepo   DocumentRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	MembershipRepo MembershipReader
}

// UnitOfWork runs fn against repositories bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos RepositoryProvider) error) error
}
