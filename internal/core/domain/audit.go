package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineSnapshot is the audited shape of a journal line.
type LineSnapshot struct {
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// SnapshotLines captures the audited fields of lines.
func SnapshotLines(lines []JournalLine) []LineSnapshot {
	snaps := make([]LineSnapshot, 0, len(lines))
	for _, l := range lines {
		snaps = append(snaps, LineSnapshot{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		})
	}
	return snaps
}

// AuditRecord is an append-only record of one ledger edit.
// Hash chains each record to the previous record of the same entry.
type AuditRecord struct {
	AuditID        string         `json:"auditID"`
	EntryID        string         `json:"entryID"`
	CompanyID      string         `json:"companyID"`
	ActorID        string         `json:"actorID"`
	ActorEmail     string         `json:"actorEmail"`
	ActorName      string         `json:"actorName"`
	ReferenceLabel string         `json:"referenceLabel"`
	OldLines       []LineSnapshot `json:"oldLines"`
	NewLines       []LineSnapshot `json:"newLines"`
	Reason         string         `json:"reason"`
	CreatedAt      time.Time      `json:"createdAt"`
	PrevHash       string         `json:"prevHash"`
	Hash           string         `json:"hash"`
}

// AuditVerification is the outcome of recomputing an entry's audit hash chain.
type AuditVerification struct {
	EntryID  string `json:"entryID"`
	Records  int    `json:"records"`
	Valid    bool   `json:"valid"`
	BrokenAt string `json:"brokenAt,omitempty"` // AuditID of the first record that fails verification
	HeadHash string `json:"headHash,omitempty"`
}
