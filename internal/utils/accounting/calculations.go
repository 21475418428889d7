package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest debit/credit difference still treated as balanced.
var Tolerance = decimal.NewFromFloat(0.01)

var (
	ErrUnbalanced     = fmt.Errorf("%w: journal entry is unbalanced", apperrors.ErrValidation)
	ErrZeroValueEntry = fmt.Errorf("%w: journal entry total must be greater than zero", apperrors.ErrValidation)
	ErrMinLines       = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrInvalidLine    = fmt.Errorf("%w: invalid journal line", apperrors.ErrValidation)
)

// Totals holds the column sums of a set of lines.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Difference returns debit minus credit.
func (t Totals) Difference() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// ImbalanceError reports the totals of an entry whose sides do not match.
type ImbalanceError struct {
	Totals Totals
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debit %s, credit %s, difference %s",
		e.Totals.Debit.StringFixed(2), e.Totals.Credit.StringFixed(2), e.Totals.Difference().Abs().StringFixed(2))
}

func (e *ImbalanceError) Is(target error) bool {
	return target == ErrUnbalanced || errors.Is(ErrUnbalanced, target)
}

// SumLines adds up the debit and credit columns.
func SumLines(lines []domain.LedgerLine) Totals {
	t := Totals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range lines {
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
	}
	return t
}

// ValidateBalanced enforces the double-entry invariant on a set of lines.
// Every line carries a non-negative amount on exactly one side, debits equal
// credits within Tolerance, and the entry total is greater than zero.
func ValidateBalanced(lines []domain.LedgerLine) (Totals, error) {
	if len(lines) < 2 {
		return Totals{}, ErrMinLines
	}

	for i, l := range lines {
		if l.AccountID == "" {
			return Totals{}, fmt.Errorf("%w: line %d has no account", ErrInvalidLine, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return Totals{}, fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, i+1)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return Totals{}, fmt.Errorf("%w: line %d has both debit and credit", ErrInvalidLine, i+1)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return Totals{}, fmt.Errorf("%w: line %d has no amount", ErrInvalidLine, i+1)
		}
	}

	totals := SumLines(lines)
	if totals.Difference().Abs().GreaterThan(Tolerance) {
		return totals, &ImbalanceError{Totals: totals}
	}
	if totals.Debit.IsZero() {
		return totals, ErrZeroValueEntry
	}
	return totals, nil
}

// CalculateSignedAmount returns the effect of a line on an account balance
// kept on the account's normal side.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(line domain.LedgerLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// BalanceDeltas aggregates the signed effect of all lines per account.
func BalanceDeltas(lines []domain.LedgerLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, l.AccountID)
		}
		signed, err := CalculateSignedAmount(l, acc.AccountType)
		if err != nil {
			return nil, err
		}
		deltas[l.AccountID] = deltas[l.AccountID].Add(signed)
	}
	return deltas, nil
}
