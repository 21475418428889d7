package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	audit         portssvc.AuditSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, audit portssvc.AuditSvc) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo, audit: audit}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, orgID string, asOf time.Time, userID string) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, orgID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("org_id", orgID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		row.Balance = domain.NetBalance(row.AccountType, row.Debit, row.Credit)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	if _, err := s.audit.Record(ctx, nil, domain.AuditEvent{
		EventType:      domain.EventDataExported,
		ActorID:        userID,
		OrganizationID: orgID,
		ResourceType:   "report",
		ResourceID:     "trial_balance",
		Action:         "export trial balance",
		Metadata: map[string]any{
			"asOf": asOf.Format(time.DateOnly),
			"rows": len(report.Rows),
		},
	}); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("org_id", orgID),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}
