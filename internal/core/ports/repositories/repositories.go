package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxRunner      TxRunner
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
	InvoiceRepo   InvoiceRepositoryFacade
	AuditRepo     AuditRepository
	SyncInboxRepo SyncInboxRepository
	TimeEntryRepo TimeEntryRepository
}
