package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_Overlaps(t *testing.T) {
	existing := domain.Period{StartDate: date(2025, 7, 15), EndDate: date(2025, 8, 15)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial overlap at start", date(2025, 7, 1), date(2025, 7, 31), true},
		{"touching on last day is inclusive", date(2025, 8, 15), date(2025, 8, 31), true},
		{"touching on first day is inclusive", date(2025, 7, 1), date(2025, 7, 15), true},
		{"fully inside", date(2025, 7, 20), date(2025, 7, 25), true},
		{"enclosing", date(2025, 6, 1), date(2025, 9, 1), true},
		{"strictly before", date(2025, 6, 1), date(2025, 7, 14), false},
		{"strictly after", date(2025, 8, 16), date(2025, 8, 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.start, tt.end))
		})
	}
}

func TestPeriod_Contains(t *testing.T) {
	p := domain.Period{StartDate: date(2025, 7, 1), EndDate: date(2025, 7, 31)}

	assert.True(t, p.Contains(date(2025, 7, 1)))
	assert.True(t, p.Contains(time.Date(2025, 7, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(date(2025, 8, 1)))
	assert.False(t, p.Contains(date(2025, 6, 30)))
}

func TestPeriod_ValidateTransition(t *testing.T) {
	tests := []struct {
		from    domain.PeriodStatus
		to      domain.PeriodStatus
		allowed bool
	}{
		{domain.PeriodOpen, domain.PeriodClosing, true},
		{domain.PeriodClosing, domain.PeriodClosed, true},
		{domain.PeriodOpen, domain.PeriodClosed, false},
		{domain.PeriodClosing, domain.PeriodOpen, false},
		{domain.PeriodClosed, domain.PeriodOpen, false},
		{domain.PeriodClosed, domain.PeriodClosing, false},
		{domain.PeriodClosing, domain.PeriodClosing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			p := domain.Period{ID: "p1", Status: tt.from}
			err := p.ValidateTransition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidState)

			var stateErr *apperrors.StateError
			require.True(t, errors.As(err, &stateErr))
			assert.Equal(t, string(tt.from), stateErr.Current)
		})
	}
}

func TestPeriod_MarkClosed(t *testing.T) {
	p := domain.Period{Status: domain.PeriodClosing}
	p.CreatedAt = time.Date(2025, 7, 1, 22, 0, 0, 0, time.UTC)

	p.MarkClosed(time.Date(2025, 8, 3, 1, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.PeriodClosed, p.Status)
	require.NotNil(t, p.ClosedAt)
	require.NotNil(t, p.TimeToClose)
	assert.Equal(t, 33, *p.TimeToClose)
}
