package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/core/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListPayments(ctx context.Context, orgID string, invoiceID string) ([]domain.InvoicePayment, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoicePayment), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orgID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) RegisterPayment(ctx context.Context, orgID string, invoiceID string, req dto.RegisterPaymentRequest, userID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, orgID, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

func (suite *APIHandlerTestSuite) paymentBody() map[string]any {
	return map[string]any{
		"amount":        "250.00",
		"paymentDate":   "2025-03-10T00:00:00Z",
		"paymentMethod": "transfer",
	}
}

func (suite *APIHandlerTestSuite) TestRegisterPayment_AlreadyPaid() {
	invoiceID := uuid.NewString()
	suite.invoices.On("RegisterPayment", mock.Anything, suite.orgID, invoiceID, mock.AnythingOfType("dto.RegisterPaymentRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: F-2025-001", services.ErrInvoiceAlreadyPaid)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", suite.paymentBody())

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("ALREADY_PAID", suite.decodeError(w).Code)
	suite.invoices.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestRegisterPayment_LockContentionIsRetryable() {
	invoiceID := uuid.NewString()
	suite.invoices.On("RegisterPayment", mock.Anything, suite.orgID, invoiceID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: lock timeout", apperrors.ErrTransient)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", suite.paymentBody())

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
	body := suite.decodeError(w)
	suite.Equal("TRANSIENT", body.Code)
	suite.NotContains(body.Error, "lock timeout")
}

func (suite *APIHandlerTestSuite) TestRegisterPayment_AuditFailureHidesCause() {
	invoiceID := uuid.NewString()
	suite.invoices.On("RegisterPayment", mock.Anything, suite.orgID, invoiceID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: connection reset", apperrors.ErrAuditFailure)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", suite.paymentBody())

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.decodeError(w)
	suite.Equal("AUDIT_FAILURE", body.Code)
	suite.NotContains(body.Error, "connection reset")
}

func (suite *APIHandlerTestSuite) TestRegisterPayment_Success() {
	invoiceID := uuid.NewString()
	result := &domain.PaymentResult{
		Invoice: domain.Invoice{
			InvoiceID:     invoiceID,
			Number:        "F-2025-002",
			Total:         decimal.NewFromInt(1000),
			PaidAmount:    decimal.NewFromInt(250),
			PaymentStatus: domain.PaymentPartial,
		},
		Payment: domain.InvoicePayment{
			PaymentID: uuid.NewString(),
			InvoiceID: invoiceID,
			Amount:    decimal.NewFromInt(250),
		},
	}
	suite.invoices.On("RegisterPayment", mock.Anything, suite.orgID, invoiceID,
		mock.MatchedBy(func(r dto.RegisterPaymentRequest) bool { return r.Amount.Equal(decimal.NewFromInt(250)) }),
		suite.userID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", suite.paymentBody())

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.RegisterPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.PaymentPartial, body.Invoice.PaymentStatus)
	suite.True(body.Invoice.Outstanding.Equal(decimal.NewFromInt(750)))
	suite.invoices.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestRegisterPayment_ZeroAmountRejected() {
	body := suite.paymentBody()
	body["amount"] = "0"

	w := suite.do(http.MethodPost, "/api/v1/invoices/"+uuid.NewString()+"/payments", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.invoices.AssertNotCalled(suite.T(), "RegisterPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
