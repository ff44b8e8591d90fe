package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: label is required", apperrors.ErrValidation), http.StatusBadRequest},
		{apperrors.ErrInvalidRange, http.StatusBadRequest},
		{apperrors.NewNotFoundError("period", "p1"), http.StatusNotFound},
		{fmt.Errorf("failed to create account 1000: %w", apperrors.ErrDuplicate), http.StatusConflict},
		{apperrors.ErrPeriodOverlap, http.StatusConflict},
		{apperrors.NewStateError("period", "p1", "OPEN", "CLOSING"), http.StatusConflict},
		{fmt.Errorf("failed to post transaction: %w", apperrors.ErrPeriodClosed), http.StatusConflict},
		{apperrors.ErrUnbalanced, http.StatusUnprocessableEntity},
		{apperrors.ErrNoPeriodForDate, http.StatusUnprocessableEntity},
		{apperrors.ErrInactiveOrUnknownAccount, http.StatusUnprocessableEntity},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}
