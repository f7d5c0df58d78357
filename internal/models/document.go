package models

import "github.com/shopspring/decimal"

// Invoice is the subset of an invoices row the reconciler reads and writes.
type Invoice struct {
	InvoiceID   string          `db:"invoice_id"`
	CompanyID   string          `db:"company_id"`
	Number      string          `db:"number"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
	Shipping    decimal.Decimal `db:"shipping"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
	Status      string          `db:"status"`
	AuditFields
}

// Bill is the subset of a bills row the reconciler reads and writes.
type Bill struct {
	BillID      string          `db:"bill_id"`
	CompanyID   string          `db:"company_id"`
	Number      string          `db:"number"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
	Shipping    decimal.Decimal `db:"shipping"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
	Status      string          `db:"status"`
	AuditFields
}

// Payment is the subset of a payments row the reconciler reads and writes.
type Payment struct {
	PaymentID string          `db:"payment_id"`
	CompanyID string          `db:"company_id"`
	Direction string          `db:"direction"`
	InvoiceID *string         `db:"invoice_id"`
	BillID    *string         `db:"bill_id"`
	Amount    decimal.Decimal `db:"amount"`
	AuditFields
}
