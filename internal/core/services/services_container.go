package services

import (
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, uow portsrepo.UnitOfWork, m *metrics.ReconMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer comes first since every user-facing service depends on it
	container.Authorizer = NewCompanyAuthorizer(repos.MembershipRepo)

	container.Resolver = NewAccountResolver(repos.AccountRepo)
	container.Synchronizer = NewDocumentSynchronizer(repos.DocumentRepo, m)
	container.Audit = NewAuditLogger(repos.AuditRepo, repos.JournalRepo, container.Authorizer)
	container.Entries = NewEntryReader(repos.JournalRepo, container.Authorizer)
	container.Generator = NewLineGenerator(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.DocumentRepo,
		container.Resolver,
		m,
	)

	options := []EditorOption{
		WithEditorAuthorizer(container.Authorizer),
		WithEditorMetrics(m),
	}
	if cfg != nil && cfg.SyncMode == domain.SyncAtomic && uow != nil {
		options = append(options, WithAtomicSync(uow))
	}
	container.Editor = NewEntryEditor(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Audit,
		container.Synchronizer,
		options...,
	)

	return container
}
