package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/solar_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/middleware"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
	"github.com/SscSPs/solar_backoffice/internal/utils/redact"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// auditService implements the AuditSvc interface
type auditService struct {
	BaseService
	auditRepo    portsrepo.AuditRepository
	isProduction bool
	metrics      *metrics.Server
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithAuditMetrics counts failed audit writes.
func WithAuditMetrics(m *metrics.Server) AuditServiceOption {
	return func(s *auditService) {
		s.metrics = m
	}
}

// NewAuditService creates the audit emitter. isProduction selects whether a
// failed write aborts the caller or is only logged.
func NewAuditService(repo portsrepo.AuditRepository, isProduction bool, options ...AuditServiceOption) portssvc.AuditSvc {
	svc := &auditService{
		auditRepo:    repo,
		isProduction: isProduction,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) (string, error) {
	if err := validateAuditEvent(event); err != nil {
		return "", err
	}

	record := domain.AuditRecord{
		RecordID:     uuid.NewString(),
		EventType:    event.EventType,
		UserID:       event.ActorID,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		Action:       event.Action,
		Metadata:     redact.Sanitize(event.Metadata),
		Timestamp:    s.Now(),
	}
	if event.OrganizationID != "" {
		org := event.OrganizationID
		record.OrganizationID = &org
	}

	info := event.Request
	if info == nil {
		if fromCtx, ok := middleware.RequestContextFrom(ctx); ok {
			info = &fromCtx
		}
	}
	if info != nil {
		if info.IPAddress != "" {
			ip := info.IPAddress
			record.IPAddress = &ip
		}
		if info.UserAgent != "" {
			ua := info.UserAgent
			record.UserAgent = &ua
		}
	}

	if err := s.auditRepo.SaveRecord(ctx, tx, record); err != nil {
		if s.isProduction {
			s.metrics.AuditFailed("escalated")
			s.LogError(ctx, err, "Audit write failed",
				slog.String("event_type", string(event.EventType)),
				slog.String("resource_id", event.ResourceID))
			return "", fmt.Errorf("%w: critical: audit logging failed for event %s: %v", apperrors.ErrAuditFailure, event.EventType, err)
		}
		s.metrics.AuditFailed("suppressed")
		s.LogError(ctx, err, "Audit write failed, continuing outside production",
			slog.String("event_type", string(event.EventType)),
			slog.String("resource_id", event.ResourceID))
		return "", nil
	}

	s.LogDebug(ctx, "Audit record written",
		slog.String("record_id", record.RecordID),
		slog.String("event_type", string(event.EventType)))
	return record.RecordID, nil
}

func validateAuditEvent(event domain.AuditEvent) error {
	switch {
	case event.EventType == "":
		return fmt.Errorf("%w: audit event type is required", apperrors.ErrValidation)
	case event.ActorID == "":
		return fmt.Errorf("%w: audit actor is required", apperrors.ErrValidation)
	case event.ResourceType == "":
		return fmt.Errorf("%w: audit resource type is required", apperrors.ErrValidation)
	case event.ResourceID == "":
		return fmt.Errorf("%w: audit resource id is required", apperrors.ErrValidation)
	}
	return nil
}

func (s *auditService) ListRecords(ctx context.Context, orgID string, filter domain.AuditFilter) ([]domain.AuditRecord, error) {
	if orgID == "" {
		return nil, fmt.Errorf("%w: organization is required", apperrors.ErrValidation)
	}
	records, err := s.auditRepo.ListRecords(ctx, orgID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records", slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, nil
}
