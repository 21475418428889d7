package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	OrganizationID string          `db:"organization_id"`
	Number         string          `db:"number"`
	CustomerName   string          `db:"customer_name"`
	IssueDate      time.Time       `db:"issue_date"`
	Total          decimal.Decimal `db:"total"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	PaymentStatus  string          `db:"payment_status"`
	AuditFields
}

// InvoicePayment is a row of the invoice_payments table.
type InvoicePayment struct {
	PaymentID      string          `db:"payment_id"`
	InvoiceID      string          `db:"invoice_id"`
	OrganizationID string          `db:"organization_id"`
	Amount         decimal.Decimal `db:"amount"`
	PaymentDate    time.Time       `db:"payment_date"`
	PaymentMethod  string          `db:"payment_method"`
	Reference      sql.NullString  `db:"reference"`
	Notes          sql.NullString  `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
