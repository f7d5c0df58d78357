package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
)

type companyAuthorizer struct {
	BaseService
	memberRepo portsrepo.MembershipReader
}

// NewCompanyAuthorizer creates an authorizer backed by company memberships.
func NewCompanyAuthorizer(memberRepo portsrepo.MembershipReader) portssvc.CompanyAuthorizerSvc {
	return &companyAuthorizer{memberRepo: memberRepo}
}

var _ portssvc.CompanyAuthorizerSvc = (*companyAuthorizer)(nil)

func (s *companyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error {
	membership, err := s.memberRepo.FindCompanyMember(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Authorization failed: user is not a member of the company",
				slog.String("user_id", userID),
				slog.String("company_id", companyID))
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to check company membership",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Satisfies(requiredRole) {
		return nil
	}

	s.LogWarn(ctx, "Authorization failed: user lacks required role",
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
		slog.String("user_role", string(membership.Role)),
		slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
