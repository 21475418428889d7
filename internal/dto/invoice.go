package dto

import (
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to register an invoice.
type CreateInvoiceRequest struct {
	Number       string          `json:"number" binding:"required"`
	CustomerName string          `json:"customerName" binding:"required"`
	IssueDate    time.Time       `json:"issueDate" binding:"required"`
	Total        decimal.Decimal `json:"total" binding:"decimal_gt0"`
}

// RegisterPaymentRequest defines a payment against an invoice. The invoice id comes from the path.
type RegisterPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=transfer cash card direct_debit check other"`
	Reference     *string         `json:"reference" binding:"omitempty,max=128"`
	Notes         *string         `json:"notes"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	Number        string               `json:"number"`
	CustomerName  string               `json:"customerName"`
	IssueDate     time.Time            `json:"issueDate"`
	Total         decimal.Decimal      `json:"total"`
	PaidAmount    decimal.Decimal      `json:"paidAmount"`
	Outstanding   decimal.Decimal      `json:"outstanding"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

// PaymentResponse defines the data returned for a registered payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Reference     *string         `json:"reference,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RegisterPaymentResponse returns the payment and the invoice state after it.
type RegisterPaymentResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Payment PaymentResponse `json:"payment"`
}

func ToInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     i.InvoiceID,
		Number:        i.Number,
		CustomerName:  i.CustomerName,
		IssueDate:     i.IssueDate,
		Total:         i.Total,
		PaidAmount:    i.PaidAmount,
		Outstanding:   i.Outstanding(),
		PaymentStatus: i.PaymentStatus,
	}
}

func ToPaymentResponse(p *domain.InvoicePayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

func ToPaymentResponses(payments []domain.InvoicePayment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out
}
