package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentReader defines read operations on source documents.
type DocumentReader interface {
	FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)
	FindBillByID(ctx context.Context, companyID, billID string) (*domain.Bill, error)
	FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)

	// FindPaymentByInvoiceID returns the payment linked to an invoice, or ErrNotFound.
	FindPaymentByInvoiceID(ctx context.Context, companyID, invoiceID string) (*domain.Payment, error)

	// FindPaymentByBillID returns the payment linked to a bill, or ErrNotFound.
	FindPaymentByBillID(ctx context.Context, companyID, billID string) (*domain.Payment, error)
}

// DocumentWriter updates the numeric and status fields the ledger keeps in sync.
type DocumentWriter interface {
	UpdateInvoiceTotal(ctx context.Context, companyID, invoiceID string, total decimal.Decimal) error
	UpdateInvoiceSettlement(ctx context.Context, companyID, invoiceID string, paid decimal.Decimal, status domain.SettlementStatus) error
	UpdateBillTotal(ctx context.Context, companyID, billID string, total decimal.Decimal) error
	UpdateBillSettlement(ctx context.Context, companyID, billID string, paid decimal.Decimal, status domain.SettlementStatus) error
	UpdatePaymentAmount(ctx context.Context, companyID, paymentID string, amount decimal.Decimal) error
}

// DocumentRepositoryFacade combines document read and write operations.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
