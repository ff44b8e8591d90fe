package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, ReasonDeadlineExceeded},
		{"unbalanced wrapped", fmt.Errorf("%w: debits 100.00 credits 99.99", apperrors.ErrUnbalanced), ReasonUnbalanced},
		{"no period", apperrors.ErrNoPeriodForDate, ReasonNoPeriod},
		{"closed", apperrors.ErrPeriodClosed, ReasonPeriodClosed},
		{"inactive", apperrors.ErrInactiveOrUnknownAccount, ReasonInactiveAccount},
		{"state", apperrors.NewStateError("period", "p1", "OPEN", "CLOSING"), ReasonInvalidState},
		{"range", apperrors.ErrInvalidRange, ReasonValidation},
		{"serialization", &pgconn.PgError{Code: "40001"}, ReasonSerialization},
		{"unknown", errors.New("boom"), ReasonUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyReason(tc.err))
		})
	}
}

func TestLedgerMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePosted(50000)
	m.ObservePosted(3000)
	m.ObserveRejection("post_transaction", apperrors.ErrUnbalanced)
	m.ObserveTransition("OPEN", "CLOSING")
	m.ObserveReport("trial_balance", time.Now(), nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.postedTransactions))
	assert.Equal(t, float64(53000), testutil.ToFloat64(m.postedAmount))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejections.WithLabelValues("post_transaction", ReasonUnbalanced)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.periodTransitions.WithLabelValues("OPEN", "CLOSING")))
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.ObservePosted(1)
		m.ObserveRejection("x", errors.New("boom"))
		m.ObserveTransition("OPEN", "CLOSING")
		m.ObserveReport("x", time.Now(), nil)
		m.ObserveHTTP("GET", "/", "200", time.Millisecond)
	})
}
