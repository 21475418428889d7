package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/core/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryInvoiceRepo keeps invoices and payments in maps.
type memoryInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]domain.Invoice
	payments []domain.InvoicePayment
}

var _ portsrepo.InvoiceRepositoryFacade = (*memoryInvoiceRepo)(nil)

func newMemoryInvoiceRepo(invoices ...domain.Invoice) *memoryInvoiceRepo {
	r := &memoryInvoiceRepo{invoices: map[string]domain.Invoice{}}
	for _, inv := range invoices {
		r.invoices[inv.InvoiceID] = inv
	}
	return r
}

// txRunner returns a runner whose failed bodies restore the repo to its state at begin.
func (r *memoryInvoiceRepo) txRunner() *fakeTxRunner {
	var (
		invoices map[string]domain.Invoice
		payments []domain.InvoicePayment
	)
	return &fakeTxRunner{
		begin: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			invoices = make(map[string]domain.Invoice, len(r.invoices))
			for id, inv := range r.invoices {
				invoices[id] = inv
			}
			payments = append([]domain.InvoicePayment(nil), r.payments...)
		},
		rollback: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.invoices = invoices
			r.payments = payments
		},
	}
}

func (r *memoryInvoiceRepo) find(orgID, invoiceID string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[invoiceID]
	if !ok || inv.OrganizationID != orgID {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return &inv, nil
}

func (r *memoryInvoiceRepo) FindInvoiceByID(ctx context.Context, orgID, invoiceID string) (*domain.Invoice, error) {
	return r.find(orgID, invoiceID)
}

func (r *memoryInvoiceRepo) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, orgID, invoiceID string) (*domain.Invoice, error) {
	return r.find(orgID, invoiceID)
}

func (r *memoryInvoiceRepo) ListPayments(ctx context.Context, orgID, invoiceID string) ([]domain.InvoicePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.InvoicePayment{}
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID && p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryInvoiceRepo) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.invoices {
		if existing.OrganizationID == invoice.OrganizationID && existing.Number == invoice.Number {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, invoice.Number)
		}
	}
	r.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (r *memoryInvoiceRepo) PaymentReferenceExistsInTx(ctx context.Context, tx pgx.Tx, orgID, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrganizationID == orgID && p.Reference != nil && *p.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryInvoiceRepo) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.InvoicePayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment)
	return nil
}

func (r *memoryInvoiceRepo) UpdatePaymentStateInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paid decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := r.invoices[invoiceID]
	inv.PaidAmount = paid
	inv.PaymentStatus = status
	r.invoices[invoiceID] = inv
	return nil
}

type invoiceFixture struct {
	repo    *memoryInvoiceRepo
	audit   *MockAuditSvc
	tx      *fakeTxRunner
	service portssvc.InvoiceSvcFacade
	invoice domain.Invoice
}

func newInvoiceFixture(t *testing.T, total, paid string, status domain.PaymentStatus) *invoiceFixture {
	t.Helper()
	inv := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		OrganizationID: "org-1",
		Number:         "F-2025-0042",
		Total:          decimal.RequireFromString(total),
		PaidAmount:     decimal.RequireFromString(paid),
		PaymentStatus:  status,
	}
	repo := newMemoryInvoiceRepo(inv)
	f := &invoiceFixture{
		repo:    repo,
		audit:   new(MockAuditSvc),
		tx:      repo.txRunner(),
		invoice: inv,
	}
	f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything).Return("rec", nil)
	f.service = services.NewInvoiceService(f.tx, f.repo, f.audit)
	return f
}

func payment(amount string) dto.RegisterPaymentRequest {
	return dto.RegisterPaymentRequest{
		Amount:        decimal.RequireFromString(amount),
		PaymentDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "transfer",
	}
}

func TestRegisterPayment_PendingPartialPaidThenRejected(t *testing.T) {
	f := newInvoiceFixture(t, "1000", "0", domain.PaymentPending)
	ctx := context.Background()

	res, err := f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, payment("600"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, res.Invoice.PaymentStatus)
	assert.True(t, res.Invoice.PaidAmount.Equal(decimal.NewFromInt(600)))

	res, err = f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, payment("400"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, res.Invoice.PaymentStatus)
	assert.True(t, res.Invoice.PaidAmount.Equal(decimal.NewFromInt(1000)))

	res, err = f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, payment("1"), "user-1")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, services.ErrInvoiceAlreadyPaid)
	assert.ErrorIs(t, err, apperrors.ErrTerminalState)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))

	stored, err := f.repo.FindInvoiceByID(ctx, "org-1", f.invoice.InvoiceID)
	require.NoError(t, err)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(1000)))
	payments, _ := f.repo.ListPayments(ctx, "org-1", f.invoice.InvoiceID)
	assert.Len(t, payments, 2)
}

func TestRegisterPayment_PaidInvoiceNeverChanges(t *testing.T) {
	f := newInvoiceFixture(t, "500", "500", domain.PaymentPaid)
	ctx := context.Background()

	for _, amount := range []string{"0.01", "1", "500", "99999"} {
		_, err := f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, payment(amount), "user-1")
		assert.ErrorIs(t, err, services.ErrInvoiceAlreadyPaid, amount)
	}

	stored, _ := f.repo.FindInvoiceByID(ctx, "org-1", f.invoice.InvoiceID)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, f.repo.payments)
	f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterPayment_OtherTenantIsNotFound(t *testing.T) {
	f := newInvoiceFixture(t, "1000", "1000", domain.PaymentPaid)

	_, err := f.service.RegisterPayment(context.Background(), "org-2", f.invoice.InvoiceID, payment("10"), "user-9")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, errors.Is(err, apperrors.ErrTerminalState))
}

func TestRegisterPayment_DuplicateReference(t *testing.T) {
	f := newInvoiceFixture(t, "1000", "0", domain.PaymentPending)
	ctx := context.Background()
	ref := "TRF-889"
	req := payment("100")
	req.Reference = &ref

	_, err := f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, req, "user-1")
	require.NoError(t, err)

	_, err = f.service.RegisterPayment(ctx, "org-1", f.invoice.InvoiceID, req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	stored, _ := f.repo.FindInvoiceByID(ctx, "org-1", f.invoice.InvoiceID)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(100)))
}

func TestRegisterPayment_NonPositiveAmountRejectedBeforeLocking(t *testing.T) {
	f := newInvoiceFixture(t, "1000", "0", domain.PaymentPending)

	_, err := f.service.RegisterPayment(context.Background(), "org-1", f.invoice.InvoiceID, payment("0"), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, f.tx.calls)
}

func TestRegisterPayment_AuditFailureAborts(t *testing.T) {
	inv := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		OrganizationID: "org-1",
		Number:         "F-1",
		Total:          decimal.NewFromInt(100),
		PaidAmount:     decimal.Zero,
		PaymentStatus:  domain.PaymentPending,
	}
	repo := newMemoryInvoiceRepo(inv)
	audit := new(MockAuditSvc)
	audit.On("Record", mock.Anything, mock.Anything, eventOfType(domain.EventInvoicePaymentRegistered)).
		Return("", apperrors.ErrAuditFailure).Once()
	svc := services.NewInvoiceService(repo.txRunner(), repo, audit)

	_, err := svc.RegisterPayment(context.Background(), "org-1", inv.InvoiceID, payment("100"), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrAuditFailure)
	stored, err := repo.FindInvoiceByID(context.Background(), "org-1", inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, stored.PaymentStatus)
	assert.True(t, stored.PaidAmount.IsZero())
	assert.Empty(t, repo.payments)
	audit.AssertExpectations(t)
}

func TestCreateInvoice(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	audit := new(MockAuditSvc)
	audit.On("Record", mock.Anything, nil, eventOfType(domain.EventInvoiceCreated)).Return("rec", nil).Once()
	svc := services.NewInvoiceService(repo.txRunner(), repo, audit)
	req := dto.CreateInvoiceRequest{
		Number:       "F-2025-0100",
		CustomerName: "Tejados Solares SL",
		IssueDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Total:        decimal.RequireFromString("4500.00"),
	}

	inv, err := svc.CreateInvoice(context.Background(), "org-1", req, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, inv.PaymentStatus)
	assert.True(t, inv.PaidAmount.IsZero())

	_, err = svc.CreateInvoice(context.Background(), "org-1", req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	audit.AssertExpectations(t)
}

func TestCreateInvoice_AuditFailureLeavesNoInvoice(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	tx := repo.txRunner()
	audit := new(MockAuditSvc)
	audit.On("Record", mock.Anything, nil, eventOfType(domain.EventInvoiceCreated)).
		Return("", fmt.Errorf("%w: critical: audit logging failed", apperrors.ErrAuditFailure)).Once()
	svc := services.NewInvoiceService(tx, repo, audit)
	req := dto.CreateInvoiceRequest{
		Number:       "F-2025-0101",
		CustomerName: "Placas del Sur SA",
		IssueDate:    time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Total:        decimal.RequireFromString("1200.00"),
	}

	inv, err := svc.CreateInvoice(context.Background(), "org-1", req, "user-1")

	require.Error(t, err)
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, apperrors.ErrAuditFailure)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Empty(t, repo.invoices)
	audit.AssertExpectations(t)

	// the number is free again once the audit trail accepts writes
	audit.On("Record", mock.Anything, nil, eventOfType(domain.EventInvoiceCreated)).Return("rec", nil).Once()
	inv, err = svc.CreateInvoice(context.Background(), "org-1", req, "user-1")
	require.NoError(t, err)
	assert.Len(t, repo.invoices, 1)
	assert.Contains(t, repo.invoices, inv.InvoiceID)
}
