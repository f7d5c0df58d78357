package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// MembershipReader looks up a user's role within a company.
type MembershipReader interface {
	// FindCompanyMember returns the membership, or ErrNotFound if the user is not a member.
	FindCompanyMember(ctx context.Context, companyID, userID string) (*domain.CompanyMember, error)
}
