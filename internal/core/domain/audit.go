package domain

import "time"

// AuditEventType tags the kind of state change recorded in the audit trail.
type AuditEventType string

const (
	EventAccountCreated           AuditEventType = "account.created"
	EventJournalEntryCreated      AuditEventType = "journal_entry.created"
	EventJournalEntryPosted       AuditEventType = "journal_entry.posted"
	EventInvoiceCreated           AuditEventType = "invoice.created"
	EventInvoicePaymentRegistered AuditEventType = "invoice.payment.registered"
	EventTimeEntrySynced          AuditEventType = "sync.time_entry.applied"
	EventDataExported             AuditEventType = "data.exported"
)

// RequestContext describes where a state change came from.
type RequestContext struct {
	IPAddress string
	UserAgent string
}

// AuditEvent is the input to the audit emitter.
type AuditEvent struct {
	EventType      AuditEventType
	ActorID        string
	OrganizationID string
	ResourceType   string
	ResourceID     string
	Action         string
	Metadata       map[string]any
	Request        *RequestContext
}

// AuditRecord is an append-only audit trail row. Metadata is already sanitized.
type AuditRecord struct {
	RecordID       string         `json:"recordID"`
	EventType      AuditEventType `json:"eventType"`
	UserID         string         `json:"userID"`
	OrganizationID *string        `json:"organizationID,omitempty"`
	ResourceType   string         `json:"resourceType"`
	ResourceID     string         `json:"resourceID"`
	Action         string         `json:"action"`
	Metadata       map[string]any `json:"metadata"`
	IPAddress      *string        `json:"ipAddress,omitempty"`
	UserAgent      *string        `json:"userAgent,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// AuditFilter narrows an audit trail listing.
type AuditFilter struct {
	ResourceType string
	ResourceID   string
	Limit        int
}
