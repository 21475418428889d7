package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// syncInboxService applies offline envelopes exactly once per offline id.
type syncInboxService struct {
	BaseService
	txRunner      portsrepo.TxRunner
	inboxRepo     portsrepo.SyncInboxRepository
	timeEntryRepo portsrepo.TimeEntryRepository
	audit         portssvc.AuditSvc
	metrics       *metrics.Server
}

// NewSyncInboxService creates the sync inbox. m may be nil.
func NewSyncInboxService(txRunner portsrepo.TxRunner, inbox portsrepo.SyncInboxRepository, timeEntries portsrepo.TimeEntryRepository, audit portssvc.AuditSvc, m *metrics.Server) portssvc.SyncInboxSvc {
	return &syncInboxService{
		txRunner:      txRunner,
		inboxRepo:     inbox,
		timeEntryRepo: timeEntries,
		audit:         audit,
		metrics:       m,
	}
}

var _ portssvc.SyncInboxSvc = (*syncInboxService)(nil)

func (s *syncInboxService) Ingest(ctx context.Context, orgID string, userID string, entity string, env dto.SyncEnvelope) (*dto.SyncAck, error) {
	if err := s.RequireTenant(orgID, userID); err != nil {
		return nil, err
	}
	switch entity {
	case domain.SyncEntityTimeEntry, domain.SyncEntityLead, domain.SyncEntityClient:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyncEntity, entity)
	}
	if strings.TrimSpace(env.OfflineID) == "" {
		return nil, fmt.Errorf("%w: offline_id is required", apperrors.ErrValidation)
	}

	ack := &dto.SyncAck{OfflineID: env.OfflineID}
	rec := domain.SyncInboxRecord{
		OfflineID:        env.OfflineID,
		OrganizationID:   orgID,
		UserID:           userID,
		Entity:           entity,
		Action:           env.Action,
		Payload:          env.Data,
		OfflineTimestamp: env.OfflineTimestamp,
		ReceivedAt:       s.Now(),
	}

	err := s.txRunner.WithTx(ctx, func(tx pgx.Tx) error {
		ack.Duplicate = false
		ack.ResourceID = ""

		inserted, err := s.inboxRepo.InsertIfAbsentInTx(ctx, tx, rec)
		if err != nil {
			return err
		}
		if !inserted {
			ack.Duplicate = true
			return nil
		}
		if entity != domain.SyncEntityTimeEntry {
			return nil
		}
		resourceID, err := s.applyTimeEntry(ctx, tx, orgID, userID, env)
		if err != nil {
			return err
		}
		ack.ResourceID = resourceID
		return nil
	})
	if err != nil {
		s.metrics.SyncReceived(entity, "rejected")
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to ingest sync envelope",
				slog.String("entity", entity),
				slog.String("offline_id", env.OfflineID))
		}
		return nil, err
	}

	if ack.Duplicate {
		s.metrics.SyncReceived(entity, "duplicate")
		s.LogInfo(ctx, "Duplicate sync envelope ignored",
			slog.String("entity", entity),
			slog.String("offline_id", env.OfflineID))
		return ack, nil
	}
	s.metrics.SyncReceived(entity, "applied")
	s.LogInfo(ctx, "Sync envelope applied",
		slog.String("entity", entity),
		slog.String("action", env.Action),
		slog.String("offline_id", env.OfflineID))
	return ack, nil
}

func (s *syncInboxService) applyTimeEntry(ctx context.Context, tx pgx.Tx, orgID, userID string, env dto.SyncEnvelope) (string, error) {
	var payload dto.ClockPayload
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return "", fmt.Errorf("%w: malformed time entry payload: %v", apperrors.ErrValidation, err)
		}
	}
	if loc := payload.Location; loc != nil && (!loc.Valid() || loc.Accuracy < 0) {
		return "", fmt.Errorf("%w: location %.6f,%.6f is out of range", apperrors.ErrValidation, loc.Latitude, loc.Longitude)
	}
	at := payload.Timestamp
	if at.IsZero() {
		at = env.OfflineTimestamp
	}
	at = at.UTC()

	open, err := s.timeEntryRepo.FindOpenEntryForUpdate(ctx, tx, orgID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	var entry domain.TimeEntry
	switch env.Action {
	case domain.SyncActionClockIn:
		if open != nil {
			return "", fmt.Errorf("%w: open entry %s", ErrOpenTimeEntry, open.EntryID)
		}
		offlineID := env.OfflineID
		entry = domain.TimeEntry{
			EntryID:        uuid.NewString(),
			OrganizationID: orgID,
			UserID:         userID,
			ClockIn:        at,
			OfflineID:      &offlineID,
			Notes:          payload.Notes,
			InLocation:     payload.Location,
		}
		if err := s.timeEntryRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			return "", err
		}
	case domain.SyncActionClockOut:
		if open == nil {
			return "", ErrNoOpenTimeEntry
		}
		entry = *open
		entry.Close(at)
		entry.OutLocation = payload.Location
		if err := s.timeEntryRepo.CloseEntryInTx(ctx, tx, entry); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unsupported time entry action %q", apperrors.ErrValidation, env.Action)
	}

	metadata := map[string]any{
		"action":           env.Action,
		"offlineId":        env.OfflineID,
		"offlineTimestamp": env.OfflineTimestamp.UTC().Format(time.RFC3339),
	}
	if entry.TotalMinutes != nil {
		metadata["totalMinutes"] = *entry.TotalMinutes
	}
	if loc := payload.Location; loc != nil {
		metadata["location"] = map[string]any{
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
			"accuracy":  loc.Accuracy,
		}
	}
	if payload.Geofence != nil {
		metadata["geofence"] = string(payload.Geofence.Status)
		metadata["geofenceDistance"] = payload.Geofence.DistanceMeters
	}
	if _, err := s.audit.Record(ctx, tx, domain.AuditEvent{
		EventType:      domain.EventTimeEntrySynced,
		ActorID:        userID,
		OrganizationID: orgID,
		ResourceType:   "time_entry",
		ResourceID:     entry.EntryID,
		Action:         env.Action,
		Metadata:       metadata,
	}); err != nil {
		return "", err
	}
	return entry.EntryID, nil
}
