package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/models"
	"github.com/SscSPs/solar_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	invoiceColumns = `invoice_id, organization_id, number, customer_name, issue_date, total, paid_amount, payment_status, created_at, created_by, last_updated_at, last_updated_by`
	paymentColumns = `payment_id, invoice_id, organization_id, amount, payment_date, payment_method, reference, notes, created_at, created_by`
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OrganizationID,
		&m.Number,
		&m.CustomerName,
		&m.IssueDate,
		&m.Total,
		&m.PaidAmount,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoiceInTx inserts a new invoice within tx.
func (r *PgxInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.q(tx).Exec(ctx, query,
		m.InvoiceID,
		m.OrganizationID,
		m.Number,
		m.CustomerName,
		m.IssueDate,
		m.Total,
		m.PaidAmount,
		m.PaymentStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if dup := uniqueViolation(err, "invoice number "+m.Number+" already exists"); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice of orgID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, orgID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND organization_id = $2;`
	return r.findInvoice(ctx, r.Pool, query, orgID, invoiceID)
}

// FindInvoiceForUpdate locks the invoice row for the rest of the transaction.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, orgID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND organization_id = $2 FOR UPDATE;`
	return r.findInvoice(ctx, r.q(tx), query, orgID, invoiceID)
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, db querier, query, orgID, invoiceID string) (*domain.Invoice, error) {
	m, err := scanInvoice(db.QueryRow(ctx, query, invoiceID, orgID))
	if err != nil {
		if nf := notFound(err, "invoice "+invoiceID); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// PaymentReferenceExistsInTx reports whether reference is already used by a payment of orgID.
func (r *PgxInvoiceRepository) PaymentReferenceExistsInTx(ctx context.Context, tx pgx.Tx, orgID, reference string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM invoice_payments WHERE organization_id = $1 AND reference = $2);`
	if err := r.q(tx).QueryRow(ctx, query, orgID, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment reference: %w", err)
	}
	return exists, nil
}

// SavePaymentInTx inserts a payment row.
func (r *PgxInvoiceRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.InvoicePayment) error {
	m := mapping.ToModelInvoicePayment(payment)
	query := `
		INSERT INTO invoice_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.q(tx).Exec(ctx, query,
		m.PaymentID,
		m.InvoiceID,
		m.OrganizationID,
		m.Amount,
		m.PaymentDate,
		m.PaymentMethod,
		m.Reference,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if dup := uniqueViolation(err, "payment reference "+m.Reference.String+" already registered"); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to save payment for invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// UpdatePaymentStateInTx stores the new paid amount and status.
func (r *PgxInvoiceRepository) UpdatePaymentStateInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paid decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET paid_amount = $1, payment_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $5;
	`
	tag, err := r.q(tx).Exec(ctx, query, paid, string(status), now, userID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update payment state of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("payment state update of invoice %s affected %d rows", invoiceID, tag.RowsAffected())
	}
	return nil
}

// ListPayments returns the payments of an invoice oldest first.
func (r *PgxInvoiceRepository) ListPayments(ctx context.Context, orgID, invoiceID string) ([]domain.InvoicePayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM invoice_payments
		WHERE organization_id = $1 AND invoice_id = $2
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.InvoicePayment{}
	for rows.Next() {
		var m models.InvoicePayment
		if err := rows.Scan(
			&m.PaymentID,
			&m.InvoiceID,
			&m.OrganizationID,
			&m.Amount,
			&m.PaymentDate,
			&m.PaymentMethod,
			&m.Reference,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainInvoicePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
