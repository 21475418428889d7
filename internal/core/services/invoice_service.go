package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	txRunner    portsrepo.TxRunner
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	audit       portssvc.AuditSvc
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(txRunner portsrepo.TxRunner, repo portsrepo.InvoiceRepositoryFacade, audit portssvc.AuditSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		txRunner:    txRunner,
		invoiceRepo: repo,
		audit:       audit,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be greater than zero", apperrors.ErrValidation)
	}

	invoice := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		OrganizationID: orgID,
		Number:         number,
		CustomerName:   req.CustomerName,
		IssueDate:      req.IssueDate,
		Total:          req.Total,
		PaidAmount:     decimal.Zero,
		PaymentStatus:  domain.PaymentPending,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	err := s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.invoiceRepo.SaveInvoiceInTx(ctx, tx, invoice); err != nil {
			return err
		}
		_, err := s.audit.Record(ctx, tx, domain.AuditEvent{
			EventType:      domain.EventInvoiceCreated,
			ActorID:        userID,
			OrganizationID: orgID,
			ResourceType:   "invoice",
			ResourceID:     invoice.InvoiceID,
			Action:         "create invoice " + invoice.Number,
			Metadata: map[string]any{
				"number":   invoice.Number,
				"customer": invoice.CustomerName,
				"total":    invoice.Total.String(),
			},
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, orgID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, orgID string, invoiceID string) ([]domain.InvoicePayment, error) {
	if _, err := s.GetInvoice(ctx, orgID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.invoiceRepo.ListPayments(ctx, orgID, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// RegisterPayment locks the invoice row, rejects payments on a paid invoice,
// stores the payment and recomputes the status from the new paid sum.
func (s *invoiceService) RegisterPayment(ctx context.Context, orgID string, invoiceID string, req dto.RegisterPaymentRequest, userID string) (*domain.PaymentResult, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}
	reference := req.Reference
	if reference != nil && strings.TrimSpace(*reference) == "" {
		reference = nil
	}

	var result *domain.PaymentResult
	err := s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		invoice, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, tx, orgID, invoiceID)
		if err != nil {
			return err
		}
		if invoice.IsPaid() {
			return fmt.Errorf("%w: %s", ErrInvoiceAlreadyPaid, invoice.Number)
		}
		if reference != nil {
			exists, err := s.invoiceRepo.PaymentReferenceExistsInTx(ctx, tx, orgID, *reference)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: payment reference %s already registered", apperrors.ErrDuplicate, *reference)
			}
		}

		now := s.Now()
		payment := domain.InvoicePayment{
			PaymentID:      uuid.NewString(),
			InvoiceID:      invoice.InvoiceID,
			OrganizationID: orgID,
			Amount:         req.Amount,
			PaymentDate:    req.PaymentDate,
			PaymentMethod:  req.PaymentMethod,
			Reference:      reference,
			Notes:          req.Notes,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		if err := s.invoiceRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return err
		}

		previous := invoice.PaymentStatus
		paid := invoice.PaidAmount.Add(req.Amount)
		status := domain.StatusForPaidAmount(invoice.Total, paid)
		if err := s.invoiceRepo.UpdatePaymentStateInTx(ctx, tx, invoice.InvoiceID, paid, status, userID, now); err != nil {
			return err
		}

		metadata := map[string]any{
			"amount":         req.Amount.String(),
			"paidAmount":     paid.String(),
			"previousStatus": string(previous),
			"status":         string(status),
			"paymentMethod":  req.PaymentMethod,
			"paymentId":      payment.PaymentID,
		}
		if reference != nil {
			metadata["reference"] = *reference
		}
		if _, err := s.audit.Record(ctx, tx, domain.AuditEvent{
			EventType:      domain.EventInvoicePaymentRegistered,
			ActorID:        userID,
			OrganizationID: orgID,
			ResourceType:   "invoice",
			ResourceID:     invoice.InvoiceID,
			Action:         "register payment",
			Metadata:       metadata,
		}); err != nil {
			return err
		}

		invoice.PaidAmount = paid
		invoice.PaymentStatus = status
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		result = &domain.PaymentResult{Invoice: *invoice, Payment: payment}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to register payment", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment registered",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(result.Invoice.PaymentStatus)))
	return result, nil
}
