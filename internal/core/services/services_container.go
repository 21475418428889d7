package services

import (
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/platform/config"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Server) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// every writer depends on the audit emitter
	container.Audit = NewAuditService(repos.AuditRepo, cfg.IsProduction, WithAuditMetrics(m))

	container.Account = NewAccountService(repos.TxRunner, repos.AccountRepo, container.Audit)
	container.Journal = NewJournalService(repos.TxRunner, repos.AccountRepo, repos.JournalRepo, container.Audit)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Audit)
	container.Invoice = NewInvoiceService(repos.TxRunner, repos.InvoiceRepo, container.Audit)
	container.SyncInbox = NewSyncInboxService(repos.TxRunner, repos.SyncInboxRepo, repos.TimeEntryRepo, container.Audit, m)

	return container
}
