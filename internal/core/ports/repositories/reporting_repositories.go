package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData sums posted lines per account up to asOf inclusive.
	GetTrialBalanceData(ctx context.Context, orgID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
