package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListJournalEntries(ctx context.Context, orgID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, orgID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateJournalEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostJournalEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (suite *APIHandlerTestSuite) TestCreateJournalEntry_Unbalanced() {
	req := dto.CreateJournalEntryRequest{
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Panel sale",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(90)},
		},
	}
	suite.journal.On("CreateJournalEntry", mock.Anything, suite.orgID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: debits 100.00 do not equal credits 90.00", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("VALIDATION", body.Code)
	suite.Contains(body.Error, "do not equal")
	suite.journal.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestCreateJournalEntry_NegativeDebitRejectedBeforeService() {
	body := map[string]any{
		"date":        "2025-03-01T00:00:00Z",
		"description": "Refund",
		"lines": []map[string]any{
			{"accountId": uuid.NewString(), "debit": "-5", "credit": "0"},
			{"accountId": uuid.NewString(), "debit": "0", "credit": "-5"},
		},
	}

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journal.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
