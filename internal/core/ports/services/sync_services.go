package services

import (
	"context"

	"github.com/SscSPs/solar_backoffice/internal/dto"
)

// SyncInboxSvc applies envelopes delivered by offline clients, at most once per offline id.
type SyncInboxSvc interface {
	Ingest(ctx context.Context, orgID string, userID string, entity string, env dto.SyncEnvelope) (*dto.SyncAck, error)
}
