package services

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error)
	ListPayments(ctx context.Context, orgID string, invoiceID string) ([]domain.InvoicePayment, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// RegisterPayment applies a payment under a row lock on the invoice. A paid
	// invoice rejects it with ErrInvoiceAlreadyPaid.
	RegisterPayment(ctx context.Context, orgID string, invoiceID string, req dto.RegisterPaymentRequest, userID string) (*domain.PaymentResult, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
