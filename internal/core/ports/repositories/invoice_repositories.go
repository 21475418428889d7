package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices and their payments
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, orgID, invoiceID string) (*domain.Invoice, error)
	ListPayments(ctx context.Context, orgID, invoiceID string) ([]domain.InvoicePayment, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	// SaveInvoiceInTx persists a new invoice. A duplicate number within the organization is apperrors.ErrDuplicate.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error
}

// InvoicePaymentSupport defines the locked payment registration steps
type InvoicePaymentSupport interface {
	// FindInvoiceForUpdate locks the invoice row. Missing or foreign invoices are apperrors.ErrNotFound.
	FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, orgID, invoiceID string) (*domain.Invoice, error)

	// PaymentReferenceExistsInTx reports whether reference is already used in the organization.
	PaymentReferenceExistsInTx(ctx context.Context, tx pgx.Tx, orgID, reference string) (bool, error)

	// SavePaymentInTx inserts a payment row.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.InvoicePayment) error

	// UpdatePaymentStateInTx stores the new paid amount and status.
	UpdatePaymentStateInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paid decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoicePaymentSupport
}
