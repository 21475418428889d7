package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxFunc is the body of a ledger transaction.
type TxFunc func(tx pgx.Tx) error

// TxRunner runs fn inside a serializable transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. fn may be invoked
// more than once when the database reports a serialization failure.
type TxRunner interface {
	WithTx(ctx context.Context, fn TxFunc) error
}
