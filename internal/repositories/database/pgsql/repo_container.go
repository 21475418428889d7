package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository on dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration, txMaxAttempts int, m *metrics.Server) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxRunner:      NewTxManager(dbPool, lockTimeout, txMaxAttempts, m),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		SyncInboxRepo: newPgxSyncInboxRepository(dbPool),
		TimeEntryRepo: newPgxTimeEntryRepository(dbPool),
	}
}
