package services

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// AccountResolverSvc maps a semantic account role to a concrete account of a company.
type AccountResolverSvc interface {
	// Resolve loads the company's chart of accounts and resolves role against it.
	Resolve(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error)

	// ResolveIn resolves role against an already loaded chart of accounts.
	ResolveIn(accounts []domain.Account, role domain.AccountRole) (*domain.Account, error)
}
