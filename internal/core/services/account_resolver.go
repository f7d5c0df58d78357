package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// roleProfile describes how a role is recognised in a chart of accounts.
// Lists are in priority order.
type roleProfile struct {
	subTypes     []string
	codes        []string
	names        []string
	fallbackType domain.AccountType // empty means the role has no type fallback
}

var roleProfiles = map[domain.AccountRole]roleProfile{
	domain.RoleAccountsReceivable: {
		subTypes:     []string{"accounts_receivable", "trade_receivable"},
		codes:        []string{"1120", "1200"},
		names:        []string{"accounts receivable", "trade receivables", "ذمم مدينة", "العملاء"},
		fallbackType: domain.Asset,
	},
	domain.RoleRevenue: {
		subTypes:     []string{"sales_revenue", "revenue", "sales"},
		codes:        []string{"4100", "4000"},
		names:        []string{"sales revenue", "revenue", "sales", "إيرادات المبيعات", "المبيعات", "الإيرادات"},
		fallbackType: domain.Income,
	},
	domain.RoleVATPayable: {
		subTypes: []string{"vat_payable", "output_vat", "tax_payable"},
		codes:    []string{"2310", "2300"},
		names:    []string{"vat payable", "output vat", "tax payable", "ضريبة القيمة المضافة المستحقة", "ضريبة المخرجات"},
	},
	domain.RoleCash: {
		subTypes:     []string{"cash", "cash_on_hand"},
		codes:        []string{"1110", "1100"},
		names:        []string{"cash on hand", "petty cash", "cash", "الصندوق", "النقدية"},
		fallbackType: domain.Asset,
	},
	domain.RoleBank: {
		subTypes:     []string{"bank", "cash_at_bank"},
		codes:        []string{"1115", "1130"},
		names:        []string{"cash at bank", "bank", "البنك", "المصرف"},
		fallbackType: domain.Asset,
	},
	domain.RoleAccountsPayable: {
		subTypes:     []string{"accounts_payable", "trade_payable"},
		codes:        []string{"2110", "2100"},
		names:        []string{"accounts payable", "trade payables", "ذمم دائنة", "الموردين"},
		fallbackType: domain.Liability,
	},
	domain.RoleVATReceivable: {
		subTypes: []string{"vat_receivable", "input_vat", "tax_receivable"},
		codes:    []string{"1150", "1160"},
		names:    []string{"vat receivable", "input vat", "ضريبة المدخلات", "ضريبة القيمة المضافة القابلة للاسترداد"},
	},
	domain.RoleInventory: {
		subTypes: []string{"inventory", "stock"},
		codes:    []string{"1140", "1300"},
		names:    []string{"inventory", "stock", "المخزون"},
	},
	domain.RoleExpense: {
		subTypes:     []string{"cost_of_goods_sold", "purchases", "expense"},
		codes:        []string{"5100", "5000"},
		names:        []string{"cost of goods sold", "purchases", "expenses", "تكلفة البضاعة المباعة", "المشتريات", "المصروفات"},
		fallbackType: domain.Expense,
	},
	domain.RoleShipping: {
		subTypes: []string{"shipping", "freight"},
		codes:    []string{"4200", "5300"},
		names:    []string{"shipping", "freight", "delivery", "الشحن", "التوصيل"},
	},
}

// accountMatcher is one rule of the resolution chain.
type accountMatcher struct {
	name  string
	match func(accounts []domain.Account, profile roleProfile) (domain.Account, bool)
}

// defaultMatchers is the resolution chain; the first rule that matches wins.
var defaultMatchers = []accountMatcher{
	{name: "sub_type", match: matchSubType},
	{name: "code", match: matchCode},
	{name: "name", match: matchName},
	{name: "type_fallback", match: matchTypeFallback},
}

type accountResolver struct {
	BaseService
	accountRepo portsrepo.AccountReader
	matchers    []accountMatcher
}

// NewAccountResolver creates a resolver reading the chart of accounts from accountRepo.
func NewAccountResolver(accountRepo portsrepo.AccountReader) portssvc.AccountResolverSvc {
	return &accountResolver{
		accountRepo: accountRepo,
		matchers:    defaultMatchers,
	}
}

var _ portssvc.AccountResolverSvc = (*accountResolver)(nil)

func (s *accountResolver) Resolve(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("company_id", companyID))
		return nil, err
	}
	account, rule, err := s.resolveIn(accounts, role)
	if err != nil {
		s.LogWarn(ctx, "No account resolved for role",
			slog.String("company_id", companyID),
			slog.String("role", string(role)))
		return nil, err
	}
	s.LogDebug(ctx, "Resolved account for role",
		slog.String("company_id", companyID),
		slog.String("role", string(role)),
		slog.String("rule", rule),
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountResolver) ResolveIn(accounts []domain.Account, role domain.AccountRole) (*domain.Account, error) {
	account, _, err := s.resolveIn(accounts, role)
	return account, err
}

func (s *accountResolver) resolveIn(accounts []domain.Account, role domain.AccountRole) (*domain.Account, string, error) {
	profile, ok := roleProfiles[role]
	if !ok {
		return nil, "", &apperrors.NotFoundError{Resource: "account_role", Key: string(role)}
	}

	active := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	slices.SortStableFunc(active, func(a, b domain.Account) int {
		return cmp.Compare(a.Code, b.Code)
	})

	for _, m := range s.matchers {
		if account, ok := m.match(active, profile); ok {
			return &account, m.name, nil
		}
	}
	return nil, "", &apperrors.NotFoundError{Resource: "account_role", Key: string(role)}
}

func matchSubType(accounts []domain.Account, profile roleProfile) (domain.Account, bool) {
	for _, tag := range profile.subTypes {
		for _, a := range accounts {
			if a.SubType != "" && normalizeName(a.SubType) == tag {
				return a, true
			}
		}
	}
	return domain.Account{}, false
}

func matchCode(accounts []domain.Account, profile roleProfile) (domain.Account, bool) {
	for _, code := range profile.codes {
		for _, a := range accounts {
			if strings.TrimSpace(a.Code) == code {
				return a, true
			}
		}
	}
	return domain.Account{}, false
}

func matchName(accounts []domain.Account, profile roleProfile) (domain.Account, bool) {
	for _, synonym := range profile.names {
		needle := normalizeName(synonym)
		for _, a := range accounts {
			if strings.Contains(normalizeName(a.Name), needle) {
				return a, true
			}
		}
	}
	return domain.Account{}, false
}

func matchTypeFallback(accounts []domain.Account, profile roleProfile) (domain.Account, bool) {
	if profile.fallbackType == "" {
		return domain.Account{}, false
	}
	for _, a := range accounts {
		if a.AccountType == profile.fallbackType {
			return a, true
		}
	}
	return domain.Account{}, false
}

// normalizeName folds case and compatibility forms so "VAT Payable" and "vat payable" compare equal.
// Casers are stateful, so each call gets its own.
func normalizeName(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}
