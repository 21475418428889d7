package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/solar_backoffice/internal/models"
	"github.com/SscSPs/solar_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSyncInboxRepository struct {
	BaseRepository
}

func newPgxSyncInboxRepository(pool *pgxpool.Pool) *PgxSyncInboxRepository {
	return &PgxSyncInboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncInboxRepository = (*PgxSyncInboxRepository)(nil)

// InsertIfAbsentInTx stores rec unless its offline id was already received.
func (r *PgxSyncInboxRepository) InsertIfAbsentInTx(ctx context.Context, tx pgx.Tx, rec domain.SyncInboxRecord) (bool, error) {
	query := `
		INSERT INTO sync_inbox (offline_id, organization_id, user_id, entity, action, payload, offline_timestamp, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id, offline_id) DO NOTHING;
	`
	payload := []byte(rec.Payload)
	if len(payload) == 0 {
		payload = []byte("null")
	}
	tag, err := r.q(tx).Exec(ctx, query,
		rec.OfflineID,
		rec.OrganizationID,
		rec.UserID,
		rec.Entity,
		rec.Action,
		payload,
		rec.OfflineTimestamp,
		rec.ReceivedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record sync envelope %s: %w", rec.OfflineID, err)
	}
	return tag.RowsAffected() == 1, nil
}

type PgxTimeEntryRepository struct {
	BaseRepository
}

func newPgxTimeEntryRepository(pool *pgxpool.Pool) *PgxTimeEntryRepository {
	return &PgxTimeEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TimeEntryRepository = (*PgxTimeEntryRepository)(nil)

const timeEntryColumns = `entry_id, organization_id, user_id, clock_in, clock_out, total_minutes, offline_id, notes,
	lat_in, lng_in, address_in, lat_out, lng_out, address_out`

// FindOpenEntryForUpdate locks the user's open entry.
func (r *PgxTimeEntryRepository) FindOpenEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, userID string) (*domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE organization_id = $1 AND user_id = $2 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
		FOR UPDATE;
	`
	var m models.TimeEntry
	err := r.q(tx).QueryRow(ctx, query, orgID, userID).Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.UserID,
		&m.ClockIn,
		&m.ClockOut,
		&m.TotalMinutes,
		&m.OfflineID,
		&m.Notes,
		&m.LatIn,
		&m.LngIn,
		&m.AddressIn,
		&m.LatOut,
		&m.LngOut,
		&m.AddressOut,
	)
	if err != nil {
		if nf := notFound(err, "open time entry for user "+userID); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to find open time entry: %w", err)
	}
	d := mapping.ToDomainTimeEntry(m)
	return &d, nil
}

func (r *PgxTimeEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `INSERT INTO time_entries (` + timeEntryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.q(tx).Exec(ctx, query,
		m.EntryID,
		m.OrganizationID,
		m.UserID,
		m.ClockIn,
		m.ClockOut,
		m.TotalMinutes,
		m.OfflineID,
		m.Notes,
		m.LatIn,
		m.LngIn,
		m.AddressIn,
		m.LatOut,
		m.LngOut,
		m.AddressOut,
	)
	if err != nil {
		if dup := uniqueViolation(err, "user already has an open time entry"); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	return nil
}

func (r *PgxTimeEntryRepository) CloseEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE time_entries
		SET clock_out = $1, total_minutes = $2, lat_out = $3, lng_out = $4, address_out = $5
		WHERE entry_id = $6 AND clock_out IS NULL;
	`
	tag, err := r.q(tx).Exec(ctx, query, m.ClockOut, m.TotalMinutes, m.LatOut, m.LngOut, m.AddressOut, m.EntryID)
	if err != nil {
		return fmt.Errorf("failed to close time entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("time entry %s was not open", m.EntryID)
	}
	return nil
}
