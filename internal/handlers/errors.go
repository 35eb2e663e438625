package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const serverErrorMessage = "Server error"

// errorResponder writes service errors as JSON bodies. With diagnostics on, 500 responses also
// carry the internal error text.
type errorResponder struct {
	diagnostics bool
}

// statusFor maps an error onto the HTTP status of its sentinel.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (r errorResponder) respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		body := gin.H{"message": serverErrorMessage}
		if r.diagnostics {
			body["detail"] = err.Error()
		}
		c.JSON(status, body)
		return
	}

	logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.MessageResponse{Message: apperrors.PublicMessage(err, http.StatusText(status))})
}

// bindJSON binds the request body into req and answers 400 with the first validation failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: dto.ValidationMessage(err)})
		return false
	}
	return true
}

// callerIdentity returns the authenticated caller, answering 401 when the route was reached
// without AuthMiddleware having stored one.
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Authentication required"})
	}
	return identity, ok
}
