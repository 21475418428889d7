package accounting_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(accountID string, debit, credit string) domain.LedgerLine {
	return domain.LedgerLine{
		AccountID: accountID,
		Debit:     decimal.RequireFromString(debit),
		Credit:    decimal.RequireFromString(credit),
	}
}

func TestValidateBalanced_Balanced(t *testing.T) {
	totals, err := accounting.ValidateBalanced([]domain.LedgerLine{
		line("cash", "250.00", "0"),
		line("sales", "0", "200.00"),
		line("vat", "0", "50.00"),
	})

	require.NoError(t, err)
	assert.True(t, totals.Debit.Equal(decimal.NewFromInt(250)))
	assert.True(t, totals.Credit.Equal(decimal.NewFromInt(250)))
}

func TestValidateBalanced_WithinTolerance(t *testing.T) {
	_, err := accounting.ValidateBalanced([]domain.LedgerLine{
		line("cash", "100.01", "0"),
		line("sales", "0", "100.00"),
	})
	assert.NoError(t, err)
}

func TestValidateBalanced_ImbalanceReportsDifference(t *testing.T) {
	_, err := accounting.ValidateBalanced([]domain.LedgerLine{
		line("cash", "100", "0"),
		line("sales", "0", "99.5"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, accounting.ErrUnbalanced))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var imbalance *accounting.ImbalanceError
	require.True(t, errors.As(err, &imbalance))
	assert.True(t, imbalance.Totals.Difference().Equal(decimal.RequireFromString("0.5")))
	assert.Contains(t, err.Error(), "difference 0.50")
}

func TestValidateBalanced_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.LedgerLine
		wantErr error
	}{
		{
			name:    "single line",
			lines:   []domain.LedgerLine{line("cash", "10", "0")},
			wantErr: accounting.ErrMinLines,
		},
		{
			name:    "negative amount",
			lines:   []domain.LedgerLine{line("cash", "-10", "0"), line("sales", "0", "-10")},
			wantErr: accounting.ErrInvalidLine,
		},
		{
			name:    "both sides on one line",
			lines:   []domain.LedgerLine{line("cash", "10", "10"), line("sales", "0", "0")},
			wantErr: accounting.ErrInvalidLine,
		},
		{
			name:    "empty line",
			lines:   []domain.LedgerLine{line("cash", "10", "0"), line("sales", "0", "0")},
			wantErr: accounting.ErrInvalidLine,
		},
		{
			name:    "missing account",
			lines:   []domain.LedgerLine{line("", "10", "0"), line("sales", "0", "10")},
			wantErr: accounting.ErrInvalidLine,
		},
		{
			name:    "sub-cent amounts still balance",
			lines:   []domain.LedgerLine{line("cash", "0.001", "0"), line("sales", "0", "0.001")},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounting.ValidateBalanced(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestValidateBalanced_ZeroTotal(t *testing.T) {
	// Credits below the tolerance with no debits balance but carry no value.
	lines := []domain.LedgerLine{
		{AccountID: "cash", Debit: decimal.Zero, Credit: decimal.RequireFromString("0.005")},
		{AccountID: "sales", Debit: decimal.Zero, Credit: decimal.RequireFromString("0.004")},
	}
	_, err := accounting.ValidateBalanced(lines)
	assert.ErrorIs(t, err, accounting.ErrZeroValueEntry)
}

func TestCalculateSignedAmount(t *testing.T) {
	debit := line("a", "40", "0")
	credit := line("a", "0", "40")

	got, err := accounting.CalculateSignedAmount(debit, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(40)))

	got, err = accounting.CalculateSignedAmount(credit, domain.Expense)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-40)))

	got, err = accounting.CalculateSignedAmount(debit, domain.Liability)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-40)))

	got, err = accounting.CalculateSignedAmount(credit, domain.Revenue)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(40)))

	_, err = accounting.CalculateSignedAmount(debit, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestBalanceDeltas(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":  {AccountID: "cash", AccountType: domain.Asset},
		"sales": {AccountID: "sales", AccountType: domain.Revenue},
	}
	deltas, err := accounting.BalanceDeltas([]domain.LedgerLine{
		line("cash", "70", "0"),
		line("cash", "30", "0"),
		line("sales", "0", "100"),
	}, accounts)

	require.NoError(t, err)
	assert.True(t, deltas["cash"].Equal(decimal.NewFromInt(100)))
	assert.True(t, deltas["sales"].Equal(decimal.NewFromInt(100)))

	_, err = accounting.BalanceDeltas([]domain.LedgerLine{line("ghost", "1", "0")}, accounts)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
