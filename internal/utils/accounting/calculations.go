package accounting

import (
	"github.com/SscSPs/ledger_reconciler/internal/apperrors"
	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference an edited entry may carry.
var BalanceTolerance = decimal.RequireFromString("0.0001")

// SumLines returns the debit and credit totals of lines.
func SumLines(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// TotalDebits returns the sum of the debit side, the entry's monetary total.
func TotalDebits(lines []domain.JournalLine) decimal.Decimal {
	debits, _ := SumLines(lines)
	return debits
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func IsBalanced(lines []domain.JournalLine) bool {
	debits, credits := SumLines(lines)
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}

// IsExactlyBalanced reports whether debits equal credits exactly.
func IsExactlyBalanced(lines []domain.JournalLine) bool {
	debits, credits := SumLines(lines)
	return debits.Equal(credits)
}

// ValidateBalance returns an Unbalanced ValidationError when lines are outside tolerance.
func ValidateBalance(lines []domain.JournalLine) error {
	if IsBalanced(lines) {
		return nil
	}
	debits, credits := SumLines(lines)
	return apperrors.NewValidationError(apperrors.Unbalanced, "debits %s do not equal credits %s", debits.String(), credits.String())
}

// NormalizeLines enforces debit-xor-credit on every line.
// A positive debit zeroes the credit, all-zero lines are dropped and negative amounts are rejected.
func NormalizeLines(lines []domain.JournalLine) ([]domain.JournalLine, error) {
	out := make([]domain.JournalLine, 0, len(lines))
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, apperrors.NewValidationError(apperrors.InvalidAmount, "line %d has a negative amount", i+1)
		}
		switch {
		case l.Debit.IsPositive():
			l.Credit = decimal.Zero
		case l.Credit.IsPositive():
			l.Debit = decimal.Zero
		default:
			continue
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, apperrors.NewValidationError(apperrors.EmptyLines, "no line carries an amount")
	}
	return out, nil
}
