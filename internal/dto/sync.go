package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
)

// SyncEnvelope is the body an offline client posts for each queued mutation.
// OfflineID is the client queue id and is the idempotency key on the server.
type SyncEnvelope struct {
	Action           string          `json:"action" binding:"required"`
	Data             json.RawMessage `json:"data"`
	OfflineTimestamp time.Time       `json:"offline_timestamp" binding:"required"`
	OfflineID        string          `json:"offline_id" binding:"required"`
}

// SyncAck is the server response to a delivered envelope.
type SyncAck struct {
	OfflineID  string `json:"offline_id"`
	Duplicate  bool   `json:"duplicate"`
	ResourceID string `json:"resource_id,omitempty"`
}

// ClockPayload is the data of time_entry clock_in and clock_out envelopes.
// DurationSeconds is set on clock_out only. Location is nil when the device had
// no fix; Geofence is the client's check against the project site, if it ran one.
type ClockPayload struct {
	Timestamp       time.Time             `json:"ts"`
	ProjectID       *string               `json:"project_id,omitempty"`
	DurationSeconds *int64                `json:"duration_seconds,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Location        *domain.Location      `json:"location,omitempty"`
	Geofence        *domain.GeofenceCheck `json:"geofence,omitempty"`
}
