// Package audithash links audit records into a tamper-evident chain.
package audithash

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"golang.org/x/crypto/blake2b"
)

// canonicalRecord fixes field order and formats for hashing.
type canonicalRecord struct {
	AuditID        string          `json:"audit_id"`
	EntryID        string          `json:"entry_id"`
	CompanyID      string          `json:"company_id"`
	ActorID        string          `json:"actor_id"`
	ActorEmail     string          `json:"actor_email"`
	ActorName      string          `json:"actor_name"`
	ReferenceLabel string          `json:"reference_label"`
	OldLines       []canonicalLine `json:"old_lines"`
	NewLines       []canonicalLine `json:"new_lines"`
	Reason         string          `json:"reason"`
	CreatedAt      string          `json:"created_at"`
}

type canonicalLine struct {
	AccountID   string `json:"account_id"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description"`
}

func canonicalLines(lines []domain.LineSnapshot) []canonicalLine {
	out := make([]canonicalLine, len(lines))
	for i, l := range lines {
		out[i] = canonicalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit.String(),
			Credit:      l.Credit.String(),
			Description: l.Description,
		}
	}
	return out
}

// Timestamp normalizes t to the precision the store keeps, so hashes survive a round trip.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Compute returns the hex blake2b-256 of prevHash followed by the canonical form of rec.
// rec.PrevHash and rec.Hash are ignored.
func Compute(prevHash string, rec domain.AuditRecord) (string, error) {
	payload, err := json.Marshal(canonicalRecord{
		AuditID:        rec.AuditID,
		EntryID:        rec.EntryID,
		CompanyID:      rec.CompanyID,
		ActorID:        rec.ActorID,
		ActorEmail:     rec.ActorEmail,
		ActorName:      rec.ActorName,
		ReferenceLabel: rec.ReferenceLabel,
		OldLines:       canonicalLines(rec.OldLines),
		NewLines:       canonicalLines(rec.NewLines),
		Reason:         rec.Reason,
		CreatedAt:      Timestamp(rec.CreatedAt).Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode audit record %s: %w", rec.AuditID, err)
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	h.Write([]byte(prevHash))
	h.Write([]byte{0})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify walks records oldest first and returns the index of the first record whose
// link or hash does not check out, or -1 when the chain is intact.
func Verify(records []domain.AuditRecord) (int, error) {
	prev := ""
	for i, rec := range records {
		if rec.PrevHash != prev {
			return i, nil
		}
		want, err := Compute(prev, rec)
		if err != nil {
			return i, err
		}
		if want != rec.Hash {
			return i, nil
		}
		prev = rec.Hash
	}
	return -1, nil
}
