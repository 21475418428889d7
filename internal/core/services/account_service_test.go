package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/core/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	tx        *fakeTxRunner
	mockRepo  *MockAccountRepository
	mockAudit *MockAuditSvc
	service   portssvc.AccountSvcFacade
	orgID     string
	userID    string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.tx = &fakeTxRunner{}
	suite.mockRepo = new(MockAccountRepository)
	suite.mockAudit = new(MockAuditSvc)
	suite.service = services.NewAccountService(suite.tx, suite.mockRepo, suite.mockAudit)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        " 572 ",
		Name:        "Bank",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccountInTx", ctx, nil, mock.MatchedBy(func(a domain.Account) bool {
		return a.OrganizationID == suite.orgID && a.Code == "572" && a.Balance.IsZero()
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, nil, eventOfType(domain.EventAccountCreated)).Return("rec-1", nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("572", created.Code)
	suite.True(created.IsActive)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.Equal(1, suite.tx.calls)
	suite.Equal(0, suite.tx.rollbacks)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "572", Name: "Bank", AccountType: domain.Asset}
	dupErr := fmt.Errorf("%w: account code 572 already exists", apperrors.ErrDuplicate)

	suite.mockRepo.On("SaveAccountInTx", ctx, nil, mock.AnythingOfType("domain.Account")).Return(dupErr).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(1, suite.tx.rollbacks)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	req := dto.CreateAccountRequest{Code: "1", Name: "Odd", AccountType: domain.AccountType("CASHFLOW")}

	_, err := suite.service.CreateAccount(context.Background(), suite.orgID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccountInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(0, suite.tx.calls)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_AuditFailureAborts() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "700", Name: "Sales", AccountType: domain.Revenue}

	suite.mockRepo.On("SaveAccountInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, nil, eventOfType(domain.EventAccountCreated)).Return("", apperrors.ErrAuditFailure).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrAuditFailure)
	// the insert ran in the same transaction as the audit write and was rolled back with it
	suite.Equal(1, suite.tx.calls)
	suite.Equal(1, suite.tx.rollbacks)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, id).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.orgID, id)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_RepoError() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, id).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.orgID, id)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, suite.orgID, 50, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.orgID, 50, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
