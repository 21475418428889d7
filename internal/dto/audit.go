package dto

import (
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
)

// ListAuditRecordsParams filters the audit trail listing.
type ListAuditRecordsParams struct {
	ResourceType string `form:"resourceType"`
	ResourceID   string `form:"resourceId"`
	Limit        int    `form:"limit,default=50" binding:"min=1,max=500"`
}

// AuditRecordResponse defines the data returned for an audit record.
type AuditRecordResponse struct {
	RecordID     string                `json:"recordID"`
	EventType    domain.AuditEventType `json:"eventType"`
	UserID       string                `json:"userID"`
	ResourceType string                `json:"resourceType"`
	ResourceID   string                `json:"resourceID"`
	Action       string                `json:"action"`
	Metadata     map[string]any        `json:"metadata"`
	IPAddress    *string               `json:"ipAddress,omitempty"`
	UserAgent    *string               `json:"userAgent,omitempty"`
	Timestamp    time.Time             `json:"timestamp"`
}

// ListAuditRecordsResponse is a page of audit records, newest first.
type ListAuditRecordsResponse struct {
	Records []AuditRecordResponse `json:"records"`
}

func ToListAuditRecordsResponse(records []domain.AuditRecord) ListAuditRecordsResponse {
	out := make([]AuditRecordResponse, len(records))
	for i, r := range records {
		out[i] = AuditRecordResponse{
			RecordID:     r.RecordID,
			EventType:    r.EventType,
			UserID:       r.UserID,
			ResourceType: r.ResourceType,
			ResourceID:   r.ResourceID,
			Action:       r.Action,
			Metadata:     r.Metadata,
			IPAddress:    r.IPAddress,
			UserAgent:    r.UserAgent,
			Timestamp:    r.Timestamp,
		}
	}
	return ListAuditRecordsResponse{Records: out}
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
