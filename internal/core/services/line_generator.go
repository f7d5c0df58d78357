package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/utils/accounting"
)

// sourceDocument is the document an entry was posted from. Exactly one field is set.
type sourceDocument struct {
	invoice *domain.Invoice
	bill    *domain.Bill
}

type lineGenerator struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	documentRepo portsrepo.DocumentReader
	resolver     portssvc.AccountResolverSvc
	metrics      *metrics.ReconMetrics
	newID        func() string
}

// NewLineGenerator creates a LineGeneratorSvc.
func NewLineGenerator(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	documentRepo portsrepo.DocumentReader,
	resolver portssvc.AccountResolverSvc,
	m *metrics.ReconMetrics,
) portssvc.LineGeneratorSvc {
	return &lineGenerator{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		documentRepo: documentRepo,
		resolver:     resolver,
		metrics:      m,
		newID:        uuid.NewString,
	}
}

var _ portssvc.LineGeneratorSvc = (*lineGenerator)(nil)

func (s *lineGenerator) GenerateLines(ctx context.Context, req dto.GenerateLinesRequest) (*domain.GenerateLinesResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", req.EntryID))

	entry, err := s.journalRepo.FindEntryByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found for line generation")
		} else {
			logger.Error("Failed to load journal entry", slog.String("error", err.Error()))
		}
		return nil, err
	}
	kind := string(entry.ReferenceKind)

	if req.CompanyID != "" && entry.CompanyID != req.CompanyID {
		return nil, &apperrors.NotFoundError{Resource: "journal_entry", Key: req.EntryID}
	}
	if entry.CompanyID == "" || !entry.HasReference() {
		logger.Info("Journal entry has no source document, nothing to generate")
		s.metrics.IncGeneration(kind, "no_reference")
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNoReference, entry.EntryID)
	}
	if (req.ReferenceKind != domain.RefNone && req.ReferenceKind != entry.ReferenceKind) ||
		(req.ReferenceID != "" && req.ReferenceID != entry.ReferenceID) {
		s.metrics.IncGeneration(kind, "rejected")
		return nil, apperrors.NewValidationError(apperrors.ReferenceMismatch,
			"entry references %s, request names %s:%s", entry.ReferenceLabel(), req.ReferenceKind, req.ReferenceID)
	}

	docKind, err := generationDocumentKind(entry.ReferenceKind)
	if err != nil {
		logger.Warn("No line template for reference kind", slog.String("reference_kind", kind))
		s.metrics.IncGeneration(kind, "unsupported")
		return nil, err
	}

	exists, err := s.journalRepo.HasLines(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to check existing lines", slog.String("error", err.Error()))
		return nil, err
	}
	if exists {
		logger.Debug("Lines already exist, skipping generation")
		return s.noop(entry), nil
	}

	chart, doc, err := s.loadInputs(ctx, *entry, docKind)
	if err != nil {
		logger.Warn("Failed to load generation inputs", slog.String("error", err.Error()))
		s.metrics.IncGeneration(kind, "failed")
		return nil, err
	}

	lines, err := s.buildLines(chart, entry.ReferenceKind, doc)
	if err != nil {
		logger.Warn("Failed to build posting", slog.String("error", err.Error()))
		s.metrics.IncGeneration(kind, "failed")
		return nil, err
	}
	lines = dropZeroLines(lines)
	if len(lines) == 0 {
		logger.Info("Source document carries no amount, nothing to generate")
		return s.noop(entry), nil
	}
	if !accounting.IsExactlyBalanced(lines) {
		debits, credits := accounting.SumLines(lines)
		s.metrics.IncGeneration(kind, "failed")
		return nil, apperrors.NewValidationError(apperrors.Unbalanced,
			"%s posting debits %s do not equal credits %s", entry.ReferenceLabel(), debits.String(), credits.String())
	}

	for i := range lines {
		lines[i].LineID = s.newID()
		lines[i].EntryID = entry.EntryID
	}

	created, err := s.journalRepo.InsertLinesIfAbsent(ctx, entry.EntryID, lines)
	if err != nil {
		logger.Error("Failed to insert generated lines", slog.String("error", err.Error()))
		s.metrics.IncGeneration(kind, "failed")
		return nil, &apperrors.PersistenceError{Op: "insert_lines", Err: err}
	}
	if !created {
		logger.Debug("Lines were created concurrently, skipping generation")
		return s.noop(entry), nil
	}

	logger.Info("Generated journal lines",
		slog.String("reference", entry.ReferenceLabel()),
		slog.Int("line_count", len(lines)))
	s.metrics.IncGeneration(kind, string(domain.GenerationCreated))
	return &domain.GenerateLinesResult{
		EntryID: entry.EntryID,
		Outcome: domain.GenerationCreated,
		Lines:   lines,
	}, nil
}

func (s *lineGenerator) noop(entry *domain.JournalEntry) *domain.GenerateLinesResult {
	s.metrics.IncGeneration(string(entry.ReferenceKind), string(domain.GenerationNoop))
	return &domain.GenerateLinesResult{EntryID: entry.EntryID, Outcome: domain.GenerationNoop}
}

// generationDocumentKind maps a reference kind to the document its template reads.
func generationDocumentKind(kind domain.ReferenceKind) (domain.DocumentKind, error) {
	switch kind {
	case domain.RefInvoice, domain.RefInvoicePayment:
		return domain.DocumentInvoice, nil
	case domain.RefBill, domain.RefBillPayment:
		return domain.DocumentBill, nil
	case domain.RefNone,
		domain.RefSalesReturn,
		domain.RefPurchaseReturn,
		domain.RefPayment,
		domain.RefExpense,
		domain.RefCustomerPayment,
		domain.RefSupplierPayment,
		domain.RefPayrollPayment:
		return "", &apperrors.UnsupportedReferenceKindError{Kind: string(kind), Operation: "line generation"}
	default:
		return "", &apperrors.UnsupportedReferenceKindError{Kind: string(kind), Operation: "line generation"}
	}
}

// loadInputs fetches the chart of accounts and the source document concurrently.
func (s *lineGenerator) loadInputs(ctx context.Context, entry domain.JournalEntry, docKind domain.DocumentKind) ([]domain.Account, sourceDocument, error) {
	var (
		chart []domain.Account
		doc   sourceDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.accountRepo.ListAccountsByCompany(gctx, entry.CompanyID)
		if err != nil {
			return fmt.Errorf("load chart of accounts: %w", err)
		}
		chart = accounts
		return nil
	})
	g.Go(func() error {
		switch docKind {
		case domain.DocumentInvoice:
			inv, err := s.documentRepo.FindInvoiceByID(gctx, entry.CompanyID, entry.ReferenceID)
			if err != nil {
				return fmt.Errorf("load invoice %s: %w", entry.ReferenceID, err)
			}
			doc.invoice = inv
		case domain.DocumentBill:
			bill, err := s.documentRepo.FindBillByID(gctx, entry.CompanyID, entry.ReferenceID)
			if err != nil {
				return fmt.Errorf("load bill %s: %w", entry.ReferenceID, err)
			}
			doc.bill = bill
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, sourceDocument{}, err
	}
	return chart, doc, nil
}

func (s *lineGenerator) buildLines(chart []domain.Account, kind domain.ReferenceKind, doc sourceDocument) ([]domain.JournalLine, error) {
	switch kind {
	case domain.RefInvoice:
		return s.invoiceLines(chart, doc.invoice)
	case domain.RefInvoicePayment:
		return s.invoicePaymentLines(chart, doc.invoice)
	case domain.RefBill:
		return s.billLines(chart, doc.bill)
	case domain.RefBillPayment:
		return s.billPaymentLines(chart, doc.bill)
	default:
		return nil, &apperrors.UnsupportedReferenceKindError{Kind: string(kind), Operation: "line generation"}
	}
}

// invoiceLines: Dr AR total; Cr Revenue subtotal; Cr Shipping; Cr VAT payable.
// Shipping and tax fold into revenue when the company has no dedicated account.
func (s *lineGenerator) invoiceLines(chart []domain.Account, inv *domain.Invoice) ([]domain.JournalLine, error) {
	if inv.TotalAmount.IsZero() {
		return nil, nil
	}
	ar, err := s.resolver.ResolveIn(chart, domain.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolver.ResolveIn(chart, domain.RoleRevenue)
	if err != nil {
		return nil, err
	}

	memo := "Invoice " + inv.Number
	revenueAmount := inv.Subtotal
	var extra []domain.JournalLine

	if inv.Shipping.IsPositive() {
		shipping, err := s.resolveOptional(chart, domain.RoleShipping)
		if err != nil {
			return nil, err
		}
		if shipping != nil {
			extra = append(extra, creditLine(shipping.AccountID, inv.Shipping, memo+" shipping"))
		} else {
			revenueAmount = revenueAmount.Add(inv.Shipping)
		}
	}
	if inv.TaxAmount.IsPositive() {
		vat, err := s.resolveOptional(chart, domain.RoleVATPayable)
		if err != nil {
			return nil, err
		}
		if vat != nil {
			extra = append(extra, creditLine(vat.AccountID, inv.TaxAmount, memo+" VAT"))
		} else {
			revenueAmount = revenueAmount.Add(inv.TaxAmount)
		}
	}

	lines := []domain.JournalLine{
		debitLine(ar.AccountID, inv.TotalAmount, memo),
		creditLine(revenue.AccountID, revenueAmount, memo),
	}
	return append(lines, extra...), nil
}

// invoicePaymentLines: Dr Cash or Bank paid; Cr AR paid.
func (s *lineGenerator) invoicePaymentLines(chart []domain.Account, inv *domain.Invoice) ([]domain.JournalLine, error) {
	if inv.PaidAmount.IsZero() {
		return nil, nil
	}
	cash, err := s.resolveCashOrBank(chart)
	if err != nil {
		return nil, err
	}
	ar, err := s.resolver.ResolveIn(chart, domain.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	memo := "Payment for invoice " + inv.Number
	return []domain.JournalLine{
		debitLine(cash.AccountID, inv.PaidAmount, memo),
		creditLine(ar.AccountID, inv.PaidAmount, memo),
	}, nil
}

// billLines: Dr Inventory (or Expense) subtotal plus shipping; Dr VAT receivable; Cr AP total.
// Tax folds into the inventory line when the company has no input VAT account.
func (s *lineGenerator) billLines(chart []domain.Account, bill *domain.Bill) ([]domain.JournalLine, error) {
	if bill.TotalAmount.IsZero() {
		return nil, nil
	}
	stock, err := s.resolveOptional(chart, domain.RoleInventory)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		if stock, err = s.resolver.ResolveIn(chart, domain.RoleExpense); err != nil {
			return nil, err
		}
	}
	ap, err := s.resolver.ResolveIn(chart, domain.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}

	memo := "Bill " + bill.Number
	stockAmount := bill.Subtotal.Add(bill.Shipping)
	var vatLine *domain.JournalLine

	if bill.TaxAmount.IsPositive() {
		vat, err := s.resolveOptional(chart, domain.RoleVATReceivable)
		if err != nil {
			return nil, err
		}
		if vat != nil {
			l := debitLine(vat.AccountID, bill.TaxAmount, memo+" VAT")
			vatLine = &l
		} else {
			stockAmount = stockAmount.Add(bill.TaxAmount)
		}
	}

	lines := []domain.JournalLine{debitLine(stock.AccountID, stockAmount, memo)}
	if vatLine != nil {
		lines = append(lines, *vatLine)
	}
	return append(lines, creditLine(ap.AccountID, bill.TotalAmount, memo)), nil
}

// billPaymentLines: Dr AP paid; Cr Cash or Bank paid.
func (s *lineGenerator) billPaymentLines(chart []domain.Account, bill *domain.Bill) ([]domain.JournalLine, error) {
	if bill.PaidAmount.IsZero() {
		return nil, nil
	}
	ap, err := s.resolver.ResolveIn(chart, domain.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}
	cash, err := s.resolveCashOrBank(chart)
	if err != nil {
		return nil, err
	}
	memo := "Payment for bill " + bill.Number
	return []domain.JournalLine{
		debitLine(ap.AccountID, bill.PaidAmount, memo),
		creditLine(cash.AccountID, bill.PaidAmount, memo),
	}, nil
}

func (s *lineGenerator) resolveCashOrBank(chart []domain.Account) (*domain.Account, error) {
	cash, err := s.resolver.ResolveIn(chart, domain.RoleCash)
	if err == nil {
		return cash, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.resolver.ResolveIn(chart, domain.RoleBank)
}

// resolveOptional returns nil without error when the company has no account for role.
func (s *lineGenerator) resolveOptional(chart []domain.Account, role domain.AccountRole) (*domain.Account, error) {
	account, err := s.resolver.ResolveIn(chart, role)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return account, err
}

func debitLine(accountID string, amount decimal.Decimal, memo string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero, Description: memo}
}

func creditLine(accountID string, amount decimal.Decimal, memo string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount, Description: memo}
}

func dropZeroLines(lines []domain.JournalLine) []domain.JournalLine {
	out := lines[:0]
	for _, l := range lines {
		if l.Debit.IsZero() && l.Credit.IsZero() {
			continue
		}
		out = append(out, l)
	}
	return out
}
