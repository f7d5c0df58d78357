package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// The reconciler never writes accounts.
type AccountReader interface {
	// ListAccountsByCompany returns the company's full chart of accounts ordered by code.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)

	// FindAccountsByIDs returns the accounts of the company among accountIDs, keyed by ID.
	// Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
}
