package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of an invoice.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Invoice carries the payment state of a customer invoice.
// PaymentStatus == PaymentPaid implies PaidAmount >= Total.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	OrganizationID string          `json:"organizationID"`
	Number         string          `json:"number"`
	CustomerName   string          `json:"customerName"`
	IssueDate      time.Time       `json:"issueDate"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	AuditFields
}

// StatusForPaidAmount derives the payment status from a paid amount and total.
func StatusForPaidAmount(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// IsPaid reports whether the invoice accepts no further payments.
func (i Invoice) IsPaid() bool {
	return i.PaymentStatus == PaymentPaid
}

// Outstanding returns the amount still owed, never negative.
func (i Invoice) Outstanding() decimal.Decimal {
	rest := i.Total.Sub(i.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// InvoicePayment records a single payment registered against an invoice.
type InvoicePayment struct {
	PaymentID      string          `json:"paymentID"`
	InvoiceID      string          `json:"invoiceID"`
	OrganizationID string          `json:"organizationID"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	PaymentMethod  string          `json:"paymentMethod"`
	Reference      *string         `json:"reference,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// PaymentResult is the invoice state after a payment together with the payment row.
type PaymentResult struct {
	Invoice Invoice        `json:"invoice"`
	Payment InvoicePayment `json:"payment"`
}
