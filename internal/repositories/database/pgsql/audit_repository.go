package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/models"
	"github.com/SscSPs/solar_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `record_id, event_type, user_id, organization_id, resource_type, resource_id, action, metadata, ip_address, user_agent, created_at`

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveRecord appends a record. With a non-nil tx the insert runs under a savepoint.
func (r *PgxAuditRepository) SaveRecord(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	m, err := mapping.ToModelAuditRecord(record)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO audit_records (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	args := []any{
		m.RecordID,
		m.EventType,
		m.UserID,
		m.OrganizationID,
		m.ResourceType,
		m.ResourceID,
		m.Action,
		m.Metadata,
		m.IPAddress,
		m.UserAgent,
		m.CreatedAt,
	}

	if tx == nil {
		if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert audit record: %w", err)
		}
		return nil
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to open audit savepoint: %w", err)
	}
	if _, err := sp.Exec(ctx, query, args...); err != nil {
		_ = sp.Rollback(ctx)
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release audit savepoint: %w", err)
	}
	return nil
}

// ListRecords returns the newest records of orgID first.
func (r *PgxAuditRepository) ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	args := []any{orgID}
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE organization_id = $1`
	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += ` AND resource_type = $` + strconv.Itoa(len(args))
	}
	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += ` AND resource_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC, record_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(
			&m.RecordID,
			&m.EventType,
			&m.UserID,
			&m.OrganizationID,
			&m.ResourceType,
			&m.ResourceID,
			&m.Action,
			&m.Metadata,
			&m.IPAddress,
			&m.UserAgent,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		d, err := mapping.ToDomainAuditRecord(m)
		if err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit records: %w", err)
	}
	return records, nil
}
