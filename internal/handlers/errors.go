package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrPeriodOverlap),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrPeriodClosed):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrNoPeriodForDate),
		errors.Is(err, apperrors.ErrInactiveOrUnknownAccount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as JSON. Internal failures are logged and hidden behind fallback.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	logger.Warn("Request refused", slog.Int("status", status), slog.String("error", err.Error()))
	body := gin.H{"error": err.Error()}
	var stateErr *apperrors.StateError
	if errors.As(err, &stateErr) {
		body["currentState"] = stateErr.Current
		body["requiredState"] = stateErr.Wanted
	}
	c.JSON(status, body)
}

// bindError reports a malformed request body or query.
func bindError(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
