package domain

import (
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes receivable from payable documents.
type DocumentKind string

const (
	DocumentInvoice DocumentKind = "invoice"
	DocumentBill    DocumentKind = "bill"
)

// SettlementStatus is the payment status of an invoice or bill.
type SettlementStatus string

const (
	StatusSent          SettlementStatus = "sent"   // Unpaid invoice
	StatusUnpaid        SettlementStatus = "unpaid" // Unpaid bill
	StatusPartiallyPaid SettlementStatus = "partially_paid"
	StatusPaid          SettlementStatus = "paid"
)

// SettlementStatusFor derives a document's status from the amount settled against its total.
func SettlementStatusFor(kind DocumentKind, amount, total decimal.Decimal) SettlementStatus {
	switch {
	case !amount.IsPositive():
		if kind == DocumentInvoice {
			return StatusSent
		}
		return StatusUnpaid
	case amount.GreaterThanOrEqual(total):
		return StatusPaid
	default:
		return StatusPartiallyPaid
	}
}

// Invoice is a sales document owned by the invoicing module.
type Invoice struct {
	InvoiceID   string           `json:"invoiceID"`
	CompanyID   string           `json:"companyID"`
	Number      string           `json:"number"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	TaxAmount   decimal.Decimal  `json:"taxAmount"`
	Shipping    decimal.Decimal  `json:"shipping"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	PaidAmount  decimal.Decimal  `json:"paidAmount"`
	Status      SettlementStatus `json:"status"`
	AuditFields
}

// Bill is a purchase document owned by the purchasing module.
type Bill struct {
	BillID      string           `json:"billID"`
	CompanyID   string           `json:"companyID"`
	Number      string           `json:"number"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	TaxAmount   decimal.Decimal  `json:"taxAmount"`
	Shipping    decimal.Decimal  `json:"shipping"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	PaidAmount  decimal.Decimal  `json:"paidAmount"`
	Status      SettlementStatus `json:"status"`
	AuditFields
}

// PaymentDirection tells whether money came in from a customer or went out to a supplier.
type PaymentDirection string

const (
	PaymentFromCustomer PaymentDirection = "customer"
	PaymentToSupplier   PaymentDirection = "supplier"
)

// Payment is a settlement row, optionally linked to the invoice or bill it pays.
type Payment struct {
	PaymentID string           `json:"paymentID"`
	CompanyID string           `json:"companyID"`
	Direction PaymentDirection `json:"direction"`
	InvoiceID *string          `json:"invoiceID"`
	BillID    *string          `json:"billID"`
	Amount    decimal.Decimal  `json:"amount"`
	AuditFields
}
