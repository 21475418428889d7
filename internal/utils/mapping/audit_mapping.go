package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/models"
)

// ToModelAuditRecord converts a record, encoding its metadata as JSON.
func ToModelAuditRecord(d domain.AuditRecord) (models.AuditRecord, error) {
	meta := d.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return models.AuditRecord{}, fmt.Errorf("failed to encode audit metadata: %w", err)
	}
	return models.AuditRecord{
		RecordID:       d.RecordID,
		EventType:      string(d.EventType),
		UserID:         d.UserID,
		OrganizationID: ToNullString(d.OrganizationID),
		ResourceType:   d.ResourceType,
		ResourceID:     d.ResourceID,
		Action:         d.Action,
		Metadata:       raw,
		IPAddress:      ToNullString(d.IPAddress),
		UserAgent:      ToNullString(d.UserAgent),
		CreatedAt:      d.Timestamp,
	}, nil
}

func ToDomainAuditRecord(m models.AuditRecord) (domain.AuditRecord, error) {
	meta := map[string]any{}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &meta); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("failed to decode audit metadata of %s: %w", m.RecordID, err)
		}
	}
	return domain.AuditRecord{
		RecordID:       m.RecordID,
		EventType:      domain.AuditEventType(m.EventType),
		UserID:         m.UserID,
		OrganizationID: FromNullString(m.OrganizationID),
		ResourceType:   m.ResourceType,
		ResourceID:     m.ResourceID,
		Action:         m.Action,
		Metadata:       meta,
		IPAddress:      FromNullString(m.IPAddress),
		UserAgent:      FromNullString(m.UserAgent),
		Timestamp:      m.CreatedAt,
	}, nil
}
