package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is a row of the time_entries table.
type TimeEntry struct {
	EntryID        string         `db:"entry_id"`
	OrganizationID string         `db:"organization_id"`
	UserID         string         `db:"user_id"`
	ClockIn        time.Time      `db:"clock_in"`
	ClockOut       sql.NullTime   `db:"clock_out"`
	TotalMinutes   sql.NullInt32  `db:"total_minutes"`
	OfflineID      sql.NullString `db:"offline_id"`
	Notes          sql.NullString `db:"notes"`

	LatIn      decimal.NullDecimal `db:"lat_in"`
	LngIn      decimal.NullDecimal `db:"lng_in"`
	AddressIn  sql.NullString      `db:"address_in"`
	LatOut     decimal.NullDecimal `db:"lat_out"`
	LngOut     decimal.NullDecimal `db:"lng_out"`
	AddressOut sql.NullString      `db:"address_out"`
}
