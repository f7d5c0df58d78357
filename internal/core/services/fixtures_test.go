package services_test

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

const (
	companyID = "co-1"
	ownerID   = "user-owner"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func account(id, code, name string, typ domain.AccountType, subType string) domain.Account {
	return domain.Account{
		AccountID:   id,
		Code:        code,
		Name:        name,
		AccountType: typ,
		SubType:     subType,
		IsActive:    true,
	}
}

// standardChart is a small chart of accounts with one account per role.
func standardChart() []domain.Account {
	return []domain.Account{
		account("cash", "1110", "Cash on Hand", domain.Asset, "cash"),
		account("bank", "1115", "Cash at Bank", domain.Asset, "bank"),
		account("ar", "1120", "Accounts Receivable", domain.Asset, "accounts_receivable"),
		account("stock", "1140", "Inventory", domain.Asset, "inventory"),
		account("vat-in", "1150", "Input VAT", domain.Asset, "vat_receivable"),
		account("ap", "2110", "Accounts Payable", domain.Liability, "accounts_payable"),
		account("vat-out", "2310", "VAT Payable", domain.Liability, "vat_payable"),
		account("equity", "3100", "Owner Capital", domain.Equity, ""),
		account("sales", "4100", "Sales Revenue", domain.Income, "sales_revenue"),
		account("freight-in", "4200", "Shipping Income", domain.Income, "shipping"),
		account("cogs", "5100", "Cost of Goods Sold", domain.Expense, "cost_of_goods_sold"),
	}
}

func withoutAccounts(chart []domain.Account, ids ...string) []domain.Account {
	out := make([]domain.Account, 0, len(chart))
	for _, a := range chart {
		keep := true
		for _, id := range ids {
			if a.AccountID == id {
				keep = false
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}

func debit(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

// counterValue reads a counter sample from the registry, or 0 when it has not been recorded.
func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchesLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchesLabels(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if want, ok := labels[lp.GetName()]; ok {
			if lp.GetValue() != want {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}
