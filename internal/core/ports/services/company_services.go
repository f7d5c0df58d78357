package services

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// CompanyAuthorizerSvc defines operations for company authorization.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction checks that a user holds at least requiredRole in a company.
	// It returns ErrNotFound for non-members and ErrForbidden for insufficient roles.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error
}
