package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrialBalance(t *testing.T) {
	repo := new(MockReportingRepository)
	audit := new(MockAuditSvc)
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	repo.On("GetTrialBalanceData", context.Background(), "org-1", asOf).Return([]domain.TrialBalanceRow{
		{AccountID: "a1", AccountCode: "572", AccountType: domain.Asset, Debit: decimal.NewFromInt(1500), Credit: decimal.NewFromInt(300)},
		{AccountID: "a2", AccountCode: "700", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(1200)},
	}, nil).Once()
	audit.On("Record", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.EventType == domain.EventDataExported && e.ActorID == "user-1" && e.OrganizationID == "org-1" &&
			e.Metadata["asOf"] == "2025-06-30"
	})).Return("rec-1", nil).Once()
	svc := services.NewReportingService(repo, audit)

	report, err := svc.TrialBalance(context.Background(), "org-1", asOf, "user-1")

	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.True(t, report.Rows[0].Balance.Equal(decimal.NewFromInt(1200)))
	assert.True(t, report.Rows[1].Balance.Equal(decimal.NewFromInt(1200)))
	assert.True(t, report.TotalDebit.Equal(decimal.NewFromInt(1500)))
	assert.True(t, report.TotalCredit.Equal(decimal.NewFromInt(1500)))
	audit.AssertExpectations(t)
}

func TestTrialBalance_RepoError(t *testing.T) {
	repo := new(MockReportingRepository)
	audit := new(MockAuditSvc)
	repo.On("GetTrialBalanceData", context.Background(), "org-1", time.Time{}).Return(nil, assert.AnError).Once()
	svc := services.NewReportingService(repo, audit)

	_, err := svc.TrialBalance(context.Background(), "org-1", time.Time{}, "user-1")

	assert.ErrorIs(t, err, assert.AnError)
	audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrialBalance_AuditFailureWithholdsReport(t *testing.T) {
	repo := new(MockReportingRepository)
	audit := new(MockAuditSvc)
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	repo.On("GetTrialBalanceData", context.Background(), "org-1", asOf).Return([]domain.TrialBalanceRow{}, nil).Once()
	audit.On("Record", mock.Anything, mock.Anything, mock.Anything).Return("", apperrors.ErrAuditFailure).Once()
	svc := services.NewReportingService(repo, audit)

	report, err := svc.TrialBalance(context.Background(), "org-1", asOf, "user-1")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, apperrors.ErrAuditFailure)
}
