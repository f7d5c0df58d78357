package domain

import "fmt"

// SyncTarget names the kind of source document a synchronizer write touched.
type SyncTarget string

const (
	SyncTargetInvoice SyncTarget = "invoice"
	SyncTargetBill    SyncTarget = "bill"
	SyncTargetPayment SyncTarget = "payment"
)

// SyncWarning reports a source-document write that failed after the ledger edit committed.
type SyncWarning struct {
	ReferenceKind ReferenceKind `json:"referenceKind"`
	ReferenceID   string        `json:"referenceID"`
	Target        SyncTarget    `json:"target"`
	TargetID      string        `json:"targetID"`
	Err           error         `json:"-"`
}

func (w SyncWarning) Error() string {
	return fmt.Sprintf("sync %s %s for %s:%s: %v", w.Target, w.TargetID, w.ReferenceKind, w.ReferenceID, w.Err)
}

func (w SyncWarning) Unwrap() error { return w.Err }

// SyncMode selects how an edit reaches its source documents.
type SyncMode string

const (
	// SyncBestEffort commits the ledger edit first and reports failed document writes as warnings.
	SyncBestEffort SyncMode = "best_effort"
	// SyncAtomic writes the ledger edit and the documents in one transaction.
	SyncAtomic SyncMode = "atomic"
)
