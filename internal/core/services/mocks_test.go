package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxRunner runs the body once with a nil transaction and reports its error.
// begin and rollback, when set, let stateful fakes discard writes of a failed body.
type fakeTxRunner struct {
	calls     int
	rollbacks int
	begin     func()
	rollback  func()
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn portsrepo.TxFunc) error {
	f.calls++
	if f.begin != nil {
		f.begin()
	}
	if err := fn(nil); err != nil {
		f.rollbacks++
		if f.rollback != nil {
			f.rollback()
		}
		return err
	}
	return nil
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, orgID string, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, limit, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, entryID, userID, now)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, orgID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveRecord(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

// --- Mock AuditSvc ---
type MockAuditSvc struct {
	mock.Mock
}

var _ portssvc.AuditSvc = (*MockAuditSvc)(nil)

func (m *MockAuditSvc) Record(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) (string, error) {
	args := m.Called(ctx, tx, event)
	return args.String(0), args.Error(1)
}

func (m *MockAuditSvc) ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

// eventOfType matches an AuditEvent by its type.
func eventOfType(t domain.AuditEventType) any {
	return mock.MatchedBy(func(e domain.AuditEvent) bool { return e.EventType == t })
}

// --- Mock SyncInboxRepository ---
type MockSyncInboxRepository struct {
	mock.Mock
}

var _ portsrepo.SyncInboxRepository = (*MockSyncInboxRepository)(nil)

func (m *MockSyncInboxRepository) InsertIfAbsentInTx(ctx context.Context, tx pgx.Tx, rec domain.SyncInboxRecord) (bool, error) {
	args := m.Called(ctx, tx, rec)
	return args.Bool(0), args.Error(1)
}

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	mock.Mock
}

var _ portsrepo.TimeEntryRepository = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) FindOpenEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, userID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, tx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) CloseEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}
