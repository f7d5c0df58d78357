package domain

import (
	"slices"

	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
)

// ReferenceKind names the kind of source document a journal entry was posted from.
type ReferenceKind string

const (
	RefNone            ReferenceKind = ""
	RefInvoice         ReferenceKind = "invoice"
	RefInvoicePayment  ReferenceKind = "invoice_payment"
	RefBill            ReferenceKind = "bill"
	RefBillPayment     ReferenceKind = "bill_payment"
	RefSalesReturn     ReferenceKind = "sales_return"
	RefPurchaseReturn  ReferenceKind = "purchase_return"
	RefPayment         ReferenceKind = "payment"
	RefExpense         ReferenceKind = "expense"
	RefCustomerPayment ReferenceKind = "customer_payment"
	RefSupplierPayment ReferenceKind = "supplier_payment"
	RefPayrollPayment  ReferenceKind = "payroll_payment"
)

var allReferenceKinds = []ReferenceKind{
	RefInvoice,
	RefInvoicePayment,
	RefBill,
	RefBillPayment,
	RefSalesReturn,
	RefPurchaseReturn,
	RefPayment,
	RefExpense,
	RefCustomerPayment,
	RefSupplierPayment,
	RefPayrollPayment,
}

// Entries of these kinds are edited through their source document, never the ledger.
var protectedReferenceKinds = map[ReferenceKind]struct{}{
	RefInvoice:        {},
	RefInvoicePayment: {},
	RefBill:           {},
	RefBillPayment:    {},
	RefSalesReturn:    {},
	RefPurchaseReturn: {},
	RefPayment:        {},
	RefExpense:        {},
}

// AllReferenceKinds returns every non-empty reference kind.
func AllReferenceKinds() []ReferenceKind {
	return slices.Clone(allReferenceKinds)
}

// ParseReferenceKind converts raw input into a ReferenceKind. The empty string is a manual entry.
func ParseReferenceKind(raw string) (ReferenceKind, error) {
	kind := ReferenceKind(raw)
	if kind == RefNone || kind.IsValid() {
		return kind, nil
	}
	return RefNone, &apperrors.UnsupportedReferenceKindError{Kind: raw, Operation: "parsing"}
}

// IsValid reports whether k is a known non-empty kind.
func (k ReferenceKind) IsValid() bool {
	return slices.Contains(allReferenceKinds, k)
}

// IsProtected reports whether entries of this kind are locked against direct ledger edits.
func (k ReferenceKind) IsProtected() bool {
	_, ok := protectedReferenceKinds[k]
	return ok
}
