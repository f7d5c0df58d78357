package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/core/services"
)

func TestResolveInRulePriority(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
		role     domain.AccountRole
		want     string
	}{
		{
			name: "sub-type beats code",
			accounts: []domain.Account{
				account("by-code", "1120", "Debtors", domain.Asset, ""),
				account("by-tag", "1999", "Debtors (tagged)", domain.Asset, "accounts_receivable"),
			},
			role: domain.RoleAccountsReceivable,
			want: "by-tag",
		},
		{
			name: "code beats name",
			accounts: []domain.Account{
				account("by-name", "1001", "Accounts Receivable", domain.Asset, ""),
				account("by-code", "1120", "Debtors", domain.Asset, ""),
			},
			role: domain.RoleAccountsReceivable,
			want: "by-code",
		},
		{
			name: "name beats type fallback",
			accounts: []domain.Account{
				account("first-asset", "1000", "Petty Float", domain.Asset, ""),
				account("by-name", "1700", "Trade Receivables - Local", domain.Asset, ""),
			},
			role: domain.RoleAccountsReceivable,
			want: "by-name",
		},
		{
			name: "type fallback picks lowest code",
			accounts: []domain.Account{
				account("income-b", "4900", "Other Income", domain.Income, ""),
				account("income-a", "4500", "Consulting", domain.Income, ""),
			},
			role: domain.RoleRevenue,
			want: "income-a",
		},
		{
			name: "arabic synonym",
			accounts: []domain.Account{
				account("ar-ar", "1701", "ذمم مدينة - عملاء", domain.Asset, ""),
			},
			role: domain.RoleAccountsReceivable,
			want: "ar-ar",
		},
		{
			name: "case and width insensitive name",
			accounts: []domain.Account{
				account("vat", "2999", "ＶＡＴ PAYABLE", domain.Liability, ""),
			},
			role: domain.RoleVATPayable,
			want: "vat",
		},
		{
			name: "sub-type tag is case folded",
			accounts: []domain.Account{
				account("ship", "6000", "Courier", domain.Expense, "Shipping"),
			},
			role: domain.RoleShipping,
			want: "ship",
		},
	}

	resolver := services.NewAccountResolver(newMemStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ResolveIn(tt.accounts, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AccountID)
		})
	}
}

func TestResolveInSkipsInactiveAccounts(t *testing.T) {
	inactive := account("old-ar", "1120", "Accounts Receivable", domain.Asset, "accounts_receivable")
	inactive.IsActive = false
	active := account("new-ar", "1200", "Receivables", domain.Asset, "")

	resolver := services.NewAccountResolver(newMemStore())
	got, err := resolver.ResolveIn([]domain.Account{inactive, active}, domain.RoleAccountsReceivable)

	require.NoError(t, err)
	assert.Equal(t, "new-ar", got.AccountID)
}

func TestResolveInRolesWithoutFallback(t *testing.T) {
	// Only generic accounts of every type: roles without a type fallback must not resolve.
	chart := []domain.Account{
		account("a", "1000", "Misc Asset", domain.Asset, ""),
		account("l", "2000", "Misc Liability", domain.Liability, ""),
		account("i", "4000", "Misc Income", domain.Income, ""),
		account("e", "5000", "Misc Expense", domain.Expense, ""),
	}
	resolver := services.NewAccountResolver(newMemStore())

	for _, role := range []domain.AccountRole{domain.RoleVATPayable, domain.RoleVATReceivable, domain.RoleInventory, domain.RoleShipping} {
		t.Run(string(role), func(t *testing.T) {
			_, err := resolver.ResolveIn(chart, role)
			var nf *apperrors.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, string(role), nf.Key)
		})
	}
}

func TestResolveInEveryRoleOnStandardChart(t *testing.T) {
	want := map[domain.AccountRole]string{
		domain.RoleAccountsReceivable: "ar",
		domain.RoleRevenue:            "sales",
		domain.RoleVATPayable:         "vat-out",
		domain.RoleCash:               "cash",
		domain.RoleBank:               "bank",
		domain.RoleAccountsPayable:    "ap",
		domain.RoleVATReceivable:      "vat-in",
		domain.RoleInventory:          "stock",
		domain.RoleExpense:            "cogs",
		domain.RoleShipping:           "freight-in",
	}
	resolver := services.NewAccountResolver(newMemStore())

	for _, role := range domain.AllAccountRoles() {
		got, err := resolver.ResolveIn(standardChart(), role)
		require.NoError(t, err, role)
		assert.Equal(t, want[role], got.AccountID, role)
	}
}

func TestResolveLoadsCompanyChart(t *testing.T) {
	store := newMemStore()
	store.addAccounts(companyID, standardChart()...)
	store.addAccounts("co-2", account("other-ar", "1120", "Accounts Receivable", domain.Asset, ""))
	resolver := services.NewAccountResolver(store)

	got, err := resolver.Resolve(context.Background(), "co-2", domain.RoleAccountsReceivable)
	require.NoError(t, err)
	assert.Equal(t, "other-ar", got.AccountID)

	_, err = resolver.Resolve(context.Background(), "co-2", domain.RoleVATPayable)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	boom := errors.New("connection refused")
	store.failOn("ListAccountsByCompany", boom)

	_, err := services.NewAccountResolver(store).Resolve(context.Background(), companyID, domain.RoleCash)
	assert.ErrorIs(t, err, boom)
}
