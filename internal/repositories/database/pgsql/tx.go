package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/middleware"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
	pgStatementTimeout     = "57014"
)

// TxManager runs ledger mutations in serializable transactions.
type TxManager struct {
	BaseRepository
	lockTimeout time.Duration
	maxAttempts int
	metrics     *metrics.Server
}

// NewTxManager creates a TxManager. lockTimeout bounds every row lock wait.
func NewTxManager(pool *pgxpool.Pool, lockTimeout time.Duration, maxAttempts int, m *metrics.Server) *TxManager {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &TxManager{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
		maxAttempts:    maxAttempts,
		metrics:        m,
	}
}

var _ portsrepo.TxRunner = (*TxManager)(nil)

// WithTx runs fn in a serializable transaction, retrying on serialization
// failures and deadlocks. A lock wait timeout is returned as apperrors.ErrTransient.
func (m *TxManager) WithTx(ctx context.Context, fn portsrepo.TxFunc) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			m.metrics.TxFinished("committed")
			return nil
		}
		if isRetryablePGError(err) && attempt < m.maxAttempts {
			m.metrics.TxRetried()
			logger.Warn("Retrying ledger transaction", slog.Int("attempt", attempt), slog.String("error", err.Error()))
			if serr := sleepWithBackoff(ctx, attempt); serr != nil {
				m.metrics.TxFinished("cancelled")
				return serr
			}
			continue
		}
		m.metrics.TxFinished("rolled_back")
		return classifyTxError(err)
	}
	m.metrics.TxFinished("retries_exhausted")
	return fmt.Errorf("%w: transaction retry limit exceeded", apperrors.ErrTransient)
}

func (m *TxManager) runOnce(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := m.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer m.Rollback(ctx, tx) // ignored once committed

	if m.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", fmt.Sprintf("%dms", m.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isRetryablePGError(err error) bool {
	code := pgCode(err)
	return code == pgSerializationFailure || code == pgDeadlockDetected
}

// classifyTxError maps lock and retry exhaustion errors to the transient kind.
// Errors already carrying an application kind pass through.
func classifyTxError(err error) error {
	switch pgCode(err) {
	case pgLockNotAvailable, pgStatementTimeout:
		return fmt.Errorf("%w: row lock wait timed out: %v", apperrors.ErrTransient, err)
	case pgSerializationFailure, pgDeadlockDetected:
		return fmt.Errorf("%w: concurrent update conflict: %v", apperrors.ErrTransient, err)
	}
	return err
}

func sleepWithBackoff(ctx context.Context, attempt int) error {
	base := 20 * time.Millisecond
	backoff := time.Duration(attempt*attempt) * base
	jitter := time.Duration(rand.Int63n(int64(10 * time.Millisecond)))
	t := time.NewTimer(backoff + jitter)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
