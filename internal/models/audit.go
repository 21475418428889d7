package models

import (
	"database/sql"
	"time"
)

// AuditRecord is a row of the audit_records table. Metadata is JSONB.
type AuditRecord struct {
	RecordID       string         `db:"record_id"`
	EventType      string         `db:"event_type"`
	UserID         string         `db:"user_id"`
	OrganizationID sql.NullString `db:"organization_id"`
	ResourceType   string         `db:"resource_type"`
	ResourceID     string         `db:"resource_id"`
	Action         string         `db:"action"`
	Metadata       []byte         `db:"metadata"`
	IPAddress      sql.NullString `db:"ip_address"`
	UserAgent      sql.NullString `db:"user_agent"`
	CreatedAt      time.Time      `db:"created_at"`
}
