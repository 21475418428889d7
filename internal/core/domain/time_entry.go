package domain

import (
	"encoding/json"
	"time"
)

// TimeEntry is a worker's clock-in/clock-out interval. ClockOut is nil while open.
type TimeEntry struct {
	EntryID        string     `json:"entryID"`
	OrganizationID string     `json:"organizationID"`
	UserID         string     `json:"userID"`
	ClockIn        time.Time  `json:"clockIn"`
	ClockOut       *time.Time `json:"clockOut,omitempty"`
	TotalMinutes   *int       `json:"totalMinutes,omitempty"`
	OfflineID      *string    `json:"offlineID,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	InLocation     *Location  `json:"inLocation,omitempty"`
	OutLocation    *Location  `json:"outLocation,omitempty"`
}

// IsOpen reports whether the entry has not been clocked out yet.
func (t TimeEntry) IsOpen() bool {
	return t.ClockOut == nil
}

// Close sets the clock-out time and computes whole elapsed minutes.
func (t *TimeEntry) Close(at time.Time) {
	minutes := int(at.Sub(t.ClockIn).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	t.ClockOut = &at
	t.TotalMinutes = &minutes
}

// SyncInboxRecord is a mutation delivered by an offline client, keyed by its offline id.
type SyncInboxRecord struct {
	OfflineID        string          `json:"offlineID"`
	OrganizationID   string          `json:"organizationID"`
	UserID           string          `json:"userID"`
	Entity           string          `json:"entity"`
	Action           string          `json:"action"`
	Payload          json.RawMessage `json:"payload"`
	OfflineTimestamp time.Time       `json:"offlineTimestamp"`
	ReceivedAt       time.Time       `json:"receivedAt"`
}

// Entities accepted by the sync inbox.
const (
	SyncEntityTimeEntry = "time_entry"
	SyncEntityLead      = "lead"
	SyncEntityClient    = "client"
)

// Time entry actions carried by sync envelopes.
const (
	SyncActionClockIn  = "clock_in"
	SyncActionClockOut = "clock_out"
)
