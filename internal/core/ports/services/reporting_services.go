package services

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date and
	// records the export in the audit trail.
	TrialBalance(ctx context.Context, orgID string, asOf time.Time, userID string) (*domain.TrialBalance, error)
}
