package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/utils/mapping"
)

// PgxDocumentRepository reads invoices, bills and payments and writes back the
// amount and status columns the ledger keeps in sync.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db dbtx) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const (
	documentAuditColumns = `created_at, created_by, last_updated_at, last_updated_by, version`

	invoiceSelectQuery = `
SELECT invoice_id, company_id, number, subtotal, tax_amount, shipping, total_amount, paid_amount, status,
	` + documentAuditColumns + `
FROM invoices
`
	billSelectQuery = `
SELECT bill_id, company_id, number, subtotal, tax_amount, shipping, total_amount, paid_amount, status,
	` + documentAuditColumns + `
FROM bills
`
	paymentSelectQuery = `
SELECT payment_id, company_id, direction, invoice_id, bill_id, amount,
	` + documentAuditColumns + `
FROM payments
`
)

// findOne runs query and maps exactly one row, or returns a NotFoundError for resource/key.
func findOne[M any, D any](ctx context.Context, db dbtx, resource, key string, toDomain func(M) D, query string, args ...any) (*D, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+resource+" "+key, err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[M])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: resource, Key: key}
		}
		return nil, apperrors.NewAppError(500, "failed to find "+resource+" "+key, err)
	}
	d := toDomain(row)
	return &d, nil
}

func (r *PgxDocumentRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	return findOne(ctx, r.DB, "invoice", invoiceID, mapping.ToDomainInvoice,
		invoiceSelectQuery+"WHERE company_id = $1 AND invoice_id = $2;", companyID, invoiceID)
}

func (r *PgxDocumentRepository) FindBillByID(ctx context.Context, companyID, billID string) (*domain.Bill, error) {
	return findOne(ctx, r.DB, "bill", billID, mapping.ToDomainBill,
		billSelectQuery+"WHERE company_id = $1 AND bill_id = $2;", companyID, billID)
}

func (r *PgxDocumentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	return findOne(ctx, r.DB, "payment", paymentID, mapping.ToDomainPayment,
		paymentSelectQuery+"WHERE company_id = $1 AND payment_id = $2;", companyID, paymentID)
}

// FindPaymentByInvoiceID returns the oldest payment linked to the invoice.
func (r *PgxDocumentRepository) FindPaymentByInvoiceID(ctx context.Context, companyID, invoiceID string) (*domain.Payment, error) {
	return findOne(ctx, r.DB, "payment", "invoice:"+invoiceID, mapping.ToDomainPayment,
		paymentSelectQuery+"WHERE company_id = $1 AND invoice_id = $2 ORDER BY created_at, payment_id LIMIT 1;", companyID, invoiceID)
}

// FindPaymentByBillID returns the oldest payment linked to the bill.
func (r *PgxDocumentRepository) FindPaymentByBillID(ctx context.Context, companyID, billID string) (*domain.Payment, error) {
	return findOne(ctx, r.DB, "payment", "bill:"+billID, mapping.ToDomainPayment,
		paymentSelectQuery+"WHERE company_id = $1 AND bill_id = $2 ORDER BY created_at, payment_id LIMIT 1;", companyID, billID)
}

func (r *PgxDocumentRepository) UpdateInvoiceTotal(ctx context.Context, companyID, invoiceID string, total decimal.Decimal) error {
	return r.update(ctx, "invoice", invoiceID, `
		UPDATE invoices SET total_amount = $3, last_updated_at = NOW(), version = version + 1
		WHERE company_id = $1 AND invoice_id = $2;`, companyID, invoiceID, total)
}

func (r *PgxDocumentRepository) UpdateInvoiceSettlement(ctx context.Context, companyID, invoiceID string, paid decimal.Decimal, status domain.SettlementStatus) error {
	return r.update(ctx, "invoice", invoiceID, `
		UPDATE invoices SET paid_amount = $3, status = $4, last_updated_at = NOW(), version = version + 1
		WHERE company_id = $1 AND invoice_id = $2;`, companyID, invoiceID, paid, string(status))
}

func (r *PgxDocumentRepository) UpdateBillTotal(ctx context.Context, companyID, billID string, total decimal.Decimal) error {
	return r.update(ctx, "bill", billID, `
		UPDATE bills SET total_amount = $3, last_updated_at = NOW(), version = version + 1
		WHERE company_id = $1 AND bill_id = $2;`, companyID, billID, total)
}

func (r *PgxDocumentRepository) UpdateBillSettlement(ctx context.Context, companyID, billID string, paid decimal.Decimal, status domain.SettlementStatus) error {
	return r.update(ctx, "bill", billID, `
		UPDATE bills SET paid_amount = $3, status = $4, last_updated_at = NOW(), version = version + 1
		WHERE company_id = $1 AND bill_id = $2;`, companyID, billID, paid, string(status))
}

func (r *PgxDocumentRepository) UpdatePaymentAmount(ctx context.Context, companyID, paymentID string, amount decimal.Decimal) error {
	return r.update(ctx, "payment", paymentID, `
		UPDATE payments SET amount = $3, last_updated_at = NOW(), version = version + 1
		WHERE company_id = $1 AND payment_id = $2;`, companyID, paymentID, amount)
}

func (r *PgxDocumentRepository) update(ctx context.Context, resource, key, query string, args ...any) error {
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update "+resource+" "+key, err)
	}
	if tag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: resource, Key: key}
	}
	return nil
}
