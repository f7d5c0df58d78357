package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/utils/accounting"
)

type documentSynchronizer struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	metrics      *metrics.ReconMetrics
}

// NewDocumentSynchronizer creates a synchronizer writing through documentRepo.
func NewDocumentSynchronizer(documentRepo portsrepo.DocumentRepositoryFacade, m *metrics.ReconMetrics) portssvc.DocumentSynchronizerSvc {
	return &documentSynchronizer{documentRepo: documentRepo, metrics: m}
}

var _ portssvc.DocumentSynchronizerSvc = (*documentSynchronizer)(nil)

func (s *documentSynchronizer) Synchronize(ctx context.Context, entry domain.JournalEntry, oldLines, newLines []domain.JournalLine) []domain.SyncWarning {
	warnings := s.apply(ctx, s.documentRepo, entry, oldLines, newLines)
	for _, w := range warnings {
		s.LogWarn(ctx, "Source document sync failed",
			slog.String("entry_id", entry.EntryID),
			slog.String("reference_kind", string(w.ReferenceKind)),
			slog.String("reference_id", w.ReferenceID),
			slog.String("target", string(w.Target)),
			slog.String("target_id", w.TargetID),
			slog.String("error", w.Err.Error()))
		s.metrics.IncSyncWarning(string(w.ReferenceKind), string(w.Target))
	}
	return warnings
}

func (s *documentSynchronizer) SynchronizeStrict(ctx context.Context, docs portsrepo.DocumentRepositoryFacade, entry domain.JournalEntry, oldLines, newLines []domain.JournalLine) error {
	var err error
	for _, w := range s.apply(ctx, docs, entry, oldLines, newLines) {
		err = multierr.Append(err, w)
	}
	return err
}

// apply propagates the entry's new total to its source documents and returns one warning per failed step.
func (s *documentSynchronizer) apply(ctx context.Context, docs portsrepo.DocumentRepositoryFacade, entry domain.JournalEntry, oldLines, newLines []domain.JournalLine) []domain.SyncWarning {
	if !entry.HasReference() {
		return nil
	}
	sc := syncContext{
		docs:     docs,
		entry:    entry,
		oldTotal: accounting.TotalDebits(oldLines),
		newTotal: accounting.TotalDebits(newLines),
	}

	switch entry.ReferenceKind {
	case domain.RefInvoice:
		sc.setInvoiceTotal(ctx)
	case domain.RefInvoicePayment:
		sc.settleInvoice(ctx)
	case domain.RefBill:
		sc.setBillTotal(ctx)
	case domain.RefBillPayment:
		sc.settleBill(ctx)
	case domain.RefCustomerPayment:
		sc.cascadePayment(ctx, domain.DocumentInvoice)
	case domain.RefSupplierPayment:
		sc.cascadePayment(ctx, domain.DocumentBill)
	case domain.RefPayrollPayment,
		domain.RefSalesReturn,
		domain.RefPurchaseReturn,
		domain.RefPayment,
		domain.RefExpense,
		domain.RefNone:
		// Nothing downstream mirrors these entries.
	default:
		sc.warn("", "", &apperrors.UnsupportedReferenceKindError{Kind: string(entry.ReferenceKind), Operation: "document sync"})
	}
	return sc.warnings
}

// syncContext carries one synchronization run.
type syncContext struct {
	docs     portsrepo.DocumentRepositoryFacade
	entry    domain.JournalEntry
	oldTotal decimal.Decimal
	newTotal decimal.Decimal
	warnings []domain.SyncWarning
}

func (c *syncContext) warn(target domain.SyncTarget, targetID string, err error) {
	c.warnings = append(c.warnings, domain.SyncWarning{
		ReferenceKind: c.entry.ReferenceKind,
		ReferenceID:   c.entry.ReferenceID,
		Target:        target,
		TargetID:      targetID,
		Err:           err,
	})
}

func (c *syncContext) setInvoiceTotal(ctx context.Context) {
	id := c.entry.ReferenceID
	if err := c.docs.UpdateInvoiceTotal(ctx, c.entry.CompanyID, id, c.newTotal); err != nil {
		c.warn(domain.SyncTargetInvoice, id, err)
	}
}

func (c *syncContext) setBillTotal(ctx context.Context) {
	id := c.entry.ReferenceID
	if err := c.docs.UpdateBillTotal(ctx, c.entry.CompanyID, id, c.newTotal); err != nil {
		c.warn(domain.SyncTargetBill, id, err)
	}
}

// settleInvoice sets the invoice's paid amount to the entry total, then mirrors it on the linked payment.
func (c *syncContext) settleInvoice(ctx context.Context) {
	companyID, id := c.entry.CompanyID, c.entry.ReferenceID
	inv, err := c.docs.FindInvoiceByID(ctx, companyID, id)
	if err != nil {
		c.warn(domain.SyncTargetInvoice, id, err)
		return
	}
	status := domain.SettlementStatusFor(domain.DocumentInvoice, c.newTotal, inv.TotalAmount)
	if err := c.docs.UpdateInvoiceSettlement(ctx, companyID, id, c.newTotal, status); err != nil {
		c.warn(domain.SyncTargetInvoice, id, err)
	}

	payment, err := c.docs.FindPaymentByInvoiceID(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.warn(domain.SyncTargetPayment, "", err)
		}
		return
	}
	if err := c.docs.UpdatePaymentAmount(ctx, companyID, payment.PaymentID, c.newTotal); err != nil {
		c.warn(domain.SyncTargetPayment, payment.PaymentID, err)
	}
}

func (c *syncContext) settleBill(ctx context.Context) {
	companyID, id := c.entry.CompanyID, c.entry.ReferenceID
	bill, err := c.docs.FindBillByID(ctx, companyID, id)
	if err != nil {
		c.warn(domain.SyncTargetBill, id, err)
		return
	}
	status := domain.SettlementStatusFor(domain.DocumentBill, c.newTotal, bill.TotalAmount)
	if err := c.docs.UpdateBillSettlement(ctx, companyID, id, c.newTotal, status); err != nil {
		c.warn(domain.SyncTargetBill, id, err)
	}

	payment, err := c.docs.FindPaymentByBillID(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.warn(domain.SyncTargetPayment, "", err)
		}
		return
	}
	if err := c.docs.UpdatePaymentAmount(ctx, companyID, payment.PaymentID, c.newTotal); err != nil {
		c.warn(domain.SyncTargetPayment, payment.PaymentID, err)
	}
}

// cascadePayment sets the payment amount to the entry total and shifts the linked document's
// paid amount by the difference: paid = max(0, paid - oldTotal + newTotal).
func (c *syncContext) cascadePayment(ctx context.Context, linked domain.DocumentKind) {
	companyID, id := c.entry.CompanyID, c.entry.ReferenceID
	if err := c.docs.UpdatePaymentAmount(ctx, companyID, id, c.newTotal); err != nil {
		c.warn(domain.SyncTargetPayment, id, err)
	}

	payment, err := c.docs.FindPaymentByID(ctx, companyID, id)
	if err != nil {
		c.warn(domain.SyncTargetPayment, id, err)
		return
	}
	delta := c.newTotal.Sub(c.oldTotal)

	switch linked {
	case domain.DocumentInvoice:
		if payment.InvoiceID == nil || *payment.InvoiceID == "" {
			return
		}
		invoiceID := *payment.InvoiceID
		inv, err := c.docs.FindInvoiceByID(ctx, companyID, invoiceID)
		if err != nil {
			c.warn(domain.SyncTargetInvoice, invoiceID, err)
			return
		}
		paid := decimal.Max(decimal.Zero, inv.PaidAmount.Add(delta))
		status := domain.SettlementStatusFor(domain.DocumentInvoice, paid, inv.TotalAmount)
		if err := c.docs.UpdateInvoiceSettlement(ctx, companyID, invoiceID, paid, status); err != nil {
			c.warn(domain.SyncTargetInvoice, invoiceID, err)
		}
	case domain.DocumentBill:
		if payment.BillID == nil || *payment.BillID == "" {
			return
		}
		billID := *payment.BillID
		bill, err := c.docs.FindBillByID(ctx, companyID, billID)
		if err != nil {
			c.warn(domain.SyncTargetBill, billID, err)
			return
		}
		paid := decimal.Max(decimal.Zero, bill.PaidAmount.Add(delta))
		status := domain.SettlementStatusFor(domain.DocumentBill, paid, bill.TotalAmount)
		if err := c.docs.UpdateBillSettlement(ctx, companyID, billID, paid, status); err != nil {
			c.warn(domain.SyncTargetBill, billID, err)
		}
	}
}
