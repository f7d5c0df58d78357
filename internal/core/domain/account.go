package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a chart-of-accounts row. The reconciler only ever reads these.
type Account struct {
	AccountID   string      `json:"accountID"`
	CompanyID   string      `json:"companyID"`
	Code        string      `json:"code"`        // Canonical chart code, e.g. "1120"
	Name        string      `json:"name"`        // Localized display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	SubType     string      `json:"subType"`     // Optional semantic tag, e.g. "accounts_receivable"
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AccountRole is the semantic purpose an account plays in a generated posting.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "accounts_receivable"
	RoleRevenue            AccountRole = "revenue"
	RoleVATPayable         AccountRole = "vat_payable"
	RoleCash               AccountRole = "cash"
	RoleBank               AccountRole = "bank"
	RoleAccountsPayable    AccountRole = "accounts_payable"
	RoleVATReceivable      AccountRole = "vat_receivable"
	RoleInventory          AccountRole = "inventory"
	RoleExpense            AccountRole = "expense"
	RoleShipping           AccountRole = "shipping"
)

// AllAccountRoles lists every role the resolver knows about.
func AllAccountRoles() []AccountRole {
	return []AccountRole{
		RoleAccountsReceivable,
		RoleRevenue,
		RoleVATPayable,
		RoleCash,
		RoleBank,
		RoleAccountsPayable,
		RoleVATReceivable,
		RoleInventory,
		RoleExpense,
		RoleShipping,
	}
}
