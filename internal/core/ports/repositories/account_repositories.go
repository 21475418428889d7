package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account of orgID. Accounts of other organizations are not found.
	FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, orgID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccountInTx persists a new account. A duplicate code within the organization is apperrors.ErrDuplicate.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a ledger transaction
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate locks the given accounts of orgID in ascending id order.
	// Missing ids are simply absent from the result.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, orgID string, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx adds each delta to the account balance.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
