package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/core/services"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/utils/accounting"
)

type LineGeneratorTestSuite struct {
	suite.Suite
	store     *memStore
	registry  *prometheus.Registry
	generator portssvc.LineGeneratorSvc
	ctx       context.Context
}

func (suite *LineGeneratorTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.store.addAccounts(companyID, standardChart()...)
	suite.registry = prometheus.NewRegistry()
	suite.ctx = context.Background()
	suite.rebuild()
}

func (suite *LineGeneratorTestSuite) rebuild() {
	suite.generator = services.NewLineGenerator(
		suite.store,
		suite.store,
		suite.store,
		services.NewAccountResolver(suite.store),
		metrics.NewReconMetrics(suite.registry),
	)
}

func (suite *LineGeneratorTestSuite) addInvoice(inv domain.Invoice) {
	inv.CompanyID = companyID
	suite.store.invoices[inv.InvoiceID] = inv
}

func (suite *LineGeneratorTestSuite) addBill(bill domain.Bill) {
	bill.CompanyID = companyID
	suite.store.bills[bill.BillID] = bill
}

func (suite *LineGeneratorTestSuite) addEntry(id string, kind domain.ReferenceKind, refID string) {
	suite.store.addEntry(domain.JournalEntry{
		EntryID:       id,
		CompanyID:     companyID,
		ReferenceKind: kind,
		ReferenceID:   refID,
	})
}

func (suite *LineGeneratorTestSuite) generate(entryID string) (*domain.GenerateLinesResult, error) {
	return suite.generator.GenerateLines(suite.ctx, dto.GenerateLinesRequest{EntryID: entryID, CompanyID: companyID})
}

// assertLines compares account, debit and credit of each line in order.
func (suite *LineGeneratorTestSuite) assertLines(want, got []domain.JournalLine) {
	suite.Require().Len(got, len(want))
	for i := range want {
		suite.Equal(want[i].AccountID, got[i].AccountID, "line %d account", i)
		suite.True(want[i].Debit.Equal(got[i].Debit), "line %d debit: want %s got %s", i, want[i].Debit, got[i].Debit)
		suite.True(want[i].Credit.Equal(got[i].Credit), "line %d credit: want %s got %s", i, want[i].Credit, got[i].Credit)
	}
}

func (suite *LineGeneratorTestSuite) TestInvoiceWithTax() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Number: "INV-001", Subtotal: dec("100"), TaxAmount: dec("18"), Shipping: dec("0"), TotalAmount: dec("118")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	result, err := suite.generate("je-1")

	suite.Require().NoError(err)
	suite.Equal(domain.GenerationCreated, result.Outcome)
	suite.assertLines([]domain.JournalLine{
		debit("ar", "118"),
		credit("sales", "100"),
		credit("vat-out", "18"),
	}, result.Lines)
	debits, credits := accounting.SumLines(result.Lines)
	suite.True(debits.Equal(dec("118")))
	suite.True(credits.Equal(dec("118")))

	stored := suite.store.entryLines("je-1")
	suite.Len(stored, 3)
	for _, l := range stored {
		suite.NotEmpty(l.LineID)
		suite.Equal("je-1", l.EntryID)
	}
	suite.Equal(1.0, counterValue(suite.registry, "recon_line_generations_total", map[string]string{"kind": "invoice", "outcome": "created"}))
}

func (suite *LineGeneratorTestSuite) TestInvoiceShippingAccount() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TaxAmount: dec("15"), Shipping: dec("10"), TotalAmount: dec("125")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	result, err := suite.generate("je-1")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("ar", "125"),
		credit("sales", "100"),
		credit("freight-in", "10"),
		credit("vat-out", "15"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestInvoiceFoldsShippingAndTaxWithoutDedicatedAccounts() {
	suite.store.accounts[companyID] = withoutAccounts(standardChart(), "freight-in", "vat-out")
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TaxAmount: dec("15"), Shipping: dec("10"), TotalAmount: dec("125")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	result, err := suite.generate("je-1")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("ar", "125"),
		credit("sales", "125"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestBillPrefersInventoryAndSplitsVAT() {
	suite.addBill(domain.Bill{BillID: "bill-1", Number: "B-7", Subtotal: dec("200"), TaxAmount: dec("30"), Shipping: dec("20"), TotalAmount: dec("250")})
	suite.addEntry("je-2", domain.RefBill, "bill-1")

	result, err := suite.generate("je-2")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("stock", "220"),
		debit("vat-in", "30"),
		credit("ap", "250"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestBillFallsBackToExpenseAndFoldsVAT() {
	suite.store.accounts[companyID] = withoutAccounts(standardChart(), "stock", "vat-in")
	suite.addBill(domain.Bill{BillID: "bill-1", Subtotal: dec("200"), TaxAmount: dec("30"), TotalAmount: dec("230")})
	suite.addEntry("je-2", domain.RefBill, "bill-1")

	result, err := suite.generate("je-2")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("cogs", "230"),
		credit("ap", "230"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestInvoicePaymentUsesCash() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", TotalAmount: dec("118"), PaidAmount: dec("50")})
	suite.addEntry("je-3", domain.RefInvoicePayment, "inv-1")

	result, err := suite.generate("je-3")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("cash", "50"),
		credit("ar", "50"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestInvoicePaymentWithoutCashAccountUsesBank() {
	suite.store.accounts[companyID] = withoutAccounts(standardChart(), "cash")
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", TotalAmount: dec("118"), PaidAmount: dec("118")})
	suite.addEntry("je-3", domain.RefInvoicePayment, "inv-1")

	result, err := suite.generate("je-3")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("bank", "118"),
		credit("ar", "118"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestBillPayment() {
	suite.addBill(domain.Bill{BillID: "bill-1", TotalAmount: dec("250"), PaidAmount: dec("100")})
	suite.addEntry("je-4", domain.RefBillPayment, "bill-1")

	result, err := suite.generate("je-4")

	suite.Require().NoError(err)
	suite.assertLines([]domain.JournalLine{
		debit("ap", "100"),
		credit("cash", "100"),
	}, result.Lines)
}

func (suite *LineGeneratorTestSuite) TestSecondCallIsNoop() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TotalAmount: dec("100")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	first, err := suite.generate("je-1")
	suite.Require().NoError(err)
	suite.Equal(domain.GenerationCreated, first.Outcome)

	second, err := suite.generate("je-1")
	suite.Require().NoError(err)
	suite.Equal(domain.GenerationNoop, second.Outcome)
	suite.Len(suite.store.entryLines("je-1"), 2)
}

func (suite *LineGeneratorTestSuite) TestConcurrentInsertIsNoop() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TotalAmount: dec("100")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")
	winner := []domain.JournalLine{debit("ar", "100"), credit("sales", "100")}
	suite.store.beforeInsert = func(s *memStore, entryID string) {
		s.lines[entryID] = winner
	}

	result, err := suite.generate("je-1")

	suite.Require().NoError(err)
	suite.Equal(domain.GenerationNoop, result.Outcome)
	suite.Equal(winner, suite.store.entryLines("je-1"))
}

func (suite *LineGeneratorTestSuite) TestMissingCompanyIsNoReference() {
	suite.store.addEntry(domain.JournalEntry{EntryID: "je-5", ReferenceKind: domain.RefInvoice, ReferenceID: "inv-1"})

	result, err := suite.generator.GenerateLines(suite.ctx, dto.GenerateLinesRequest{EntryID: "je-5"})

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNoReference)
	suite.Empty(suite.store.entryLines("je-5"))
}

func (suite *LineGeneratorTestSuite) TestManualEntryIsNoReference() {
	suite.addEntry("je-6", domain.RefNone, "")

	_, err := suite.generate("je-6")

	suite.ErrorIs(err, apperrors.ErrNoReference)

	// Naming a reference does not turn a manual entry into a mismatch.
	_, err = suite.generator.GenerateLines(suite.ctx, dto.GenerateLinesRequest{
		EntryID:       "je-6",
		CompanyID:     companyID,
		ReferenceKind: domain.RefInvoice,
		ReferenceID:   "inv-1",
	})

	suite.ErrorIs(err, apperrors.ErrNoReference)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.store.entryLines("je-6"))
}

func (suite *LineGeneratorTestSuite) TestMissingRequiredAccountWritesNothing() {
	suite.store.accounts[companyID] = []domain.Account{
		account("sales", "4100", "Sales Revenue", domain.Income, "sales_revenue"),
	}
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TotalAmount: dec("100")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	_, err := suite.generate("je-1")

	var nf *apperrors.NotFoundError
	suite.Require().ErrorAs(err, &nf)
	suite.Equal("account_role", nf.Resource)
	suite.Equal(string(domain.RoleAccountsReceivable), nf.Key)
	suite.Empty(suite.store.entryLines("je-1"))
}

func (suite *LineGeneratorTestSuite) TestMissingSourceDocument() {
	suite.addEntry("je-1", domain.RefInvoice, "inv-missing")

	_, err := suite.generate("je-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.store.entryLines("je-1"))
}

func (suite *LineGeneratorTestSuite) TestInconsistentTotalsAreUnbalanced() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TaxAmount: dec("18"), TotalAmount: dec("120")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	_, err := suite.generate("je-1")

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal(apperrors.Unbalanced, vErr.Kind)
	suite.Empty(suite.store.entryLines("je-1"))
}

func (suite *LineGeneratorTestSuite) TestZeroAmountDocumentIsNoop() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", TotalAmount: dec("118"), PaidAmount: dec("0")})
	suite.addEntry("je-3", domain.RefInvoicePayment, "inv-1")

	result, err := suite.generate("je-3")

	suite.Require().NoError(err)
	suite.Equal(domain.GenerationNoop, result.Outcome)
	suite.Empty(suite.store.entryLines("je-3"))
}

func (suite *LineGeneratorTestSuite) TestReferenceMismatch() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TotalAmount: dec("100")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	_, err := suite.generator.GenerateLines(suite.ctx, dto.GenerateLinesRequest{
		EntryID:       "je-1",
		CompanyID:     companyID,
		ReferenceKind: domain.RefBill,
		ReferenceID:   "inv-1",
	})

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal(apperrors.ReferenceMismatch, vErr.Kind)
}

func (suite *LineGeneratorTestSuite) TestOtherCompanyEntryIsNotFound() {
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")

	_, err := suite.generator.GenerateLines(suite.ctx, dto.GenerateLinesRequest{EntryID: "je-1", CompanyID: "co-other"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LineGeneratorTestSuite) TestInsertFailureIsPersistenceError() {
	suite.addInvoice(domain.Invoice{InvoiceID: "inv-1", Subtotal: dec("100"), TotalAmount: dec("100")})
	suite.addEntry("je-1", domain.RefInvoice, "inv-1")
	suite.store.failOn("InsertLinesIfAbsent", errors.New("deadlock detected"))

	_, err := suite.generate("je-1")

	suite.ErrorIs(err, apperrors.ErrPersistence)
}

func TestLineGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(LineGeneratorTestSuite))
}

func TestGenerateLinesDispatchCoversEveryKind(t *testing.T) {
	supported := map[domain.ReferenceKind]bool{
		domain.RefInvoice:        true,
		domain.RefInvoicePayment: true,
		domain.RefBill:           true,
		domain.RefBillPayment:    true,
	}

	for _, kind := range append(domain.AllReferenceKinds(), domain.ReferenceKind("credit_note")) {
		t.Run(string(kind), func(t *testing.T) {
			store := newMemStore()
			store.addAccounts(companyID, standardChart()...)
			store.invoices["doc-1"] = domain.Invoice{InvoiceID: "doc-1", CompanyID: companyID, Subtotal: dec("10"), TotalAmount: dec("10"), PaidAmount: dec("10")}
			store.bills["doc-1"] = domain.Bill{BillID: "doc-1", CompanyID: companyID, Subtotal: dec("10"), TotalAmount: dec("10"), PaidAmount: dec("10")}
			store.addEntry(domain.JournalEntry{EntryID: "je", CompanyID: companyID, ReferenceKind: kind, ReferenceID: "doc-1"})
			generator := services.NewLineGenerator(store, store, store, services.NewAccountResolver(store), nil)

			result, err := generator.GenerateLines(context.Background(), dto.GenerateLinesRequest{EntryID: "je"})

			if supported[kind] {
				require.NoError(t, err)
				assert.Equal(t, domain.GenerationCreated, result.Outcome)
				assert.True(t, accounting.IsExactlyBalanced(result.Lines))
				return
			}
			var uErr *apperrors.UnsupportedReferenceKindError
			require.ErrorAs(t, err, &uErr)
			assert.Equal(t, string(kind), uErr.Kind)
			assert.Empty(t, store.entryLines("je"))
		})
	}
}
