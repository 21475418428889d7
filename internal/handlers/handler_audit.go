package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvc
}

// registerAuditRoutes exposes the audit trail read-only.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/audit-records", h.listAuditRecords)
}

// listAuditRecords godoc
// @Summary List audit records
// @Description Newest first, optionally narrowed to one resource
// @Tags audit
// @Produce  json
// @Param   resourceType query string false "Resource type"
// @Param   resourceId query string false "Resource ID"
// @Param   limit query int false "Page size" default(50)
// @Success 200 {object} dto.ListAuditRecordsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /audit-records [get]
func (h *auditHandler) listAuditRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, orgID, ok := identity(c)
	if !ok {
		return
	}

	var params dto.ListAuditRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAuditRecords", slog.String("error", err.Error()))
		badRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	records, err := h.auditService.ListRecords(c.Request.Context(), orgID, domain.AuditFilter{
		ResourceType: params.ResourceType,
		ResourceID:   params.ResourceID,
		Limit:        params.Limit,
	})
	if err != nil {
		respondError(c, err, "Failed to list audit records")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditRecordsResponse(records))
}
