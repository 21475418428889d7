package repositories

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SyncInboxRepository records every envelope delivered by offline clients.
type SyncInboxRepository interface {
	// InsertIfAbsentInTx stores rec and reports false when its offline id was already seen.
	InsertIfAbsentInTx(ctx context.Context, tx pgx.Tx, rec domain.SyncInboxRecord) (bool, error)
}

// TimeEntryRepository persists clock-in intervals.
type TimeEntryRepository interface {
	// FindOpenEntryForUpdate locks the user's open entry, apperrors.ErrNotFound when none.
	FindOpenEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID, userID string) (*domain.TimeEntry, error)

	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error

	CloseEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.TimeEntry) error
}
