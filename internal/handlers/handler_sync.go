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

// syncHandler receives envelopes replayed by offline clients.
type syncHandler struct {
	inbox portssvc.SyncInboxSvc
}

func registerSyncRoutes(rg *gin.RouterGroup, inbox portssvc.SyncInboxSvc) {
	h := &syncHandler{inbox: inbox}

	sync := rg.Group("/sync")
	{
		sync.POST("/time-entries", h.ingest(domain.SyncEntityTimeEntry))
		sync.POST("/leads", h.ingest(domain.SyncEntityLead))
		sync.POST("/clients", h.ingest(domain.SyncEntityClient))
	}
}

// ingest godoc
// @Summary Deliver an offline mutation
// @Description Idempotent by offline_id. A replayed envelope is answered with duplicate=true.
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   envelope body dto.SyncEnvelope true "Queued mutation"
// @Success 200 {object} dto.SyncAck
// @Failure 400 {object} dto.ErrorResponse "Invalid envelope"
// @Failure 404 {object} dto.ErrorResponse "No open time entry"
// @Failure 409 {object} dto.ErrorResponse "Already clocked in"
// @Failure 503 {object} dto.ErrorResponse "Lock contention, retry"
// @Security BearerAuth
// @Router /sync/time-entries [post]
// @Router /sync/leads [post]
// @Router /sync/clients [post]
func (h *syncHandler) ingest(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entity", entity))
		userID, orgID, ok := identity(c)
		if !ok {
			return
		}

		var env dto.SyncEnvelope
		if err := c.ShouldBindJSON(&env); err != nil {
			logger.Warn("Failed to bind sync envelope", slog.String("error", err.Error()))
			badRequest(c, "Invalid envelope: "+err.Error())
			return
		}

		ack, err := h.inbox.Ingest(c.Request.Context(), orgID, userID, entity, env)
		if err != nil {
			respondError(c, err, "Failed to apply sync envelope")
			return
		}
		c.JSON(http.StatusOK, ack)
	}
}
