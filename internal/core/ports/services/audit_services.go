package services

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditSvc appends sanitized records to the audit trail.
type AuditSvc interface {
	// Record writes event inside tx (nil for a standalone write) and returns the record id.
	// In production a failed write is apperrors.ErrAuditFailure. Otherwise it is
	// logged and Record returns an empty id and a nil error.
	Record(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) (string, error)

	ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error)
}
