package repositories

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditRepository appends to and reads the audit trail. There is no update or delete.
type AuditRepository interface {
	// SaveRecord inserts record. With a non-nil tx the insert runs under a
	// savepoint so a failure leaves the enclosing transaction usable.
	SaveRecord(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error

	ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error)
}
