package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
	"github.com/SscSPs/cuadre_caja_app/internal/middleware"
)

// statusFor maps service errors onto HTTP status codes. Order matters: the
// cancellation code errors are checked before the generic validation error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCancellationCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrMissingMotive), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrBlockedByPendingUsers),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBackend):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the failure envelope. Server-side failures are logged and
// their details are not echoed to the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(fallback))
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.Fail(err.Error()))
}

// bindJSON binds and validates the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return false
	}
	return true
}

// actorFromContext returns the authenticated actor or answers 401.
func actorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return domain.Actor{}, false
	}
	return actor, true
}

// validationFilter reads the optional ?validado= query parameter.
func validationFilter(c *gin.Context) (*domain.ValidationState, bool) {
	raw, present := c.GetQuery("validado")
	if !present || raw == "" {
		return nil, true
	}
	state, err := domain.ParseValidationState(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return nil, false
	}
	return &state, true
}

// requiredQuery reads a mandatory query parameter.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("query parameter '"+name+"' is required"))
		return "", false
	}
	return v, true
}
