package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/solar_backoffice/internal/apperrors"
	"github.com/SscSPs/solar_backoffice/internal/core/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// classifyError maps a service error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "VALIDATION"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "DUPLICATE"
	case errors.Is(err, services.ErrInvoiceAlreadyPaid):
		return http.StatusConflict, "ALREADY_PAID"
	case errors.Is(err, apperrors.ErrTerminalState):
		return http.StatusConflict, "TERMINAL_STATE"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperrors.ErrTransient):
		return http.StatusServiceUnavailable, "TRANSIENT"
	case errors.Is(err, apperrors.ErrAuditFailure):
		return http.StatusInternalServerError, "AUDIT_FAILURE"
	case errors.As(err, &appErr) && appErr.Code > 0:
		return appErr.Code, "INTERNAL"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// respondError writes the error body for err. Server-side failures are logged
// and answered with fallback instead of the internal message.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, code := classifyError(err)
	if status == http.StatusServiceUnavailable {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.String("code", code))
		c.Header("Retry-After", "1")
		c.JSON(status, dto.ErrorResponse{Error: "Temporary conflict, retry the request", Code: code})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.String("code", code))
		msg := fallback
		if code == "AUDIT_FAILURE" {
			msg = "Audit logging failed, the operation was not applied"
		}
		c.JSON(status, dto.ErrorResponse{Error: msg, Code: code})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.String("code", code))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Code: "VALIDATION"})
}

// identity returns the authenticated user and organization or writes a 401.
func identity(c *gin.Context) (userID, orgID string, ok bool) {
	userID, uok := middleware.GetUserIDFromContext(c)
	orgID, ook := middleware.GetOrgIDFromContext(c)
	if !uok || !ook {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User or organization not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
		return "", "", false
	}
	return userID, orgID, true
}
