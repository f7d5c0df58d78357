package models

// Account is a row of chart_of_accounts.
type Account struct {
	AccountID   string  `db:"account_id"`
	CompanyID   string  `db:"company_id"`
	Code        string  `db:"code"`
	Name        string  `db:"name"`
	AccountType string  `db:"account_type"`
	SubType     *string `db:"sub_type"` // Nullable
	IsActive    bool    `db:"is_active"`
	AuditFields
}
