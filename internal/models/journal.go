package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	EntryID       string    `db:"entry_id"`
	CompanyID     string    `db:"company_id"`
	EntryDate     time.Time `db:"entry_date"`
	Description   string    `db:"description"`
	ReferenceKind *string   `db:"reference_kind"` // Nullable for manual entries
	ReferenceID   *string   `db:"reference_id"`   // Nullable for manual entries
	BranchID      *string   `db:"branch_id"`
	CostCenterID  *string   `db:"cost_center_id"`
	AuditFields
}

// JournalLine is a row of journal_lines. LineNo keeps posting order.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
