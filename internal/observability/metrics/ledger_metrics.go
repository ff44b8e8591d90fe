package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ledger"

// Rejection reasons for posting and period transitions.
const (
	ReasonValidation       = "validation"
	ReasonUnbalanced       = "unbalanced"
	ReasonNoPeriod         = "no_period"
	ReasonPeriodClosed     = "period_closed"
	ReasonInactiveAccount  = "inactive_account"
	ReasonInvalidState     = "invalid_state"
	ReasonSerialization    = "serialization_failure"
	ReasonDeadlineExceeded = "deadline_exceeded"
	ReasonUnknown          = "unknown"
)

// LedgerMetrics captures posting, period lifecycle and reporting signals.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	postedTransactions prometheus.Counter
	postedAmount       prometheus.Counter
	rejections         *prometheus.CounterVec
	periodTransitions  *prometheus.CounterVec
	reportDuration     *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers the ledger collectors on registerer, or on the default registerer when nil.
func New(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		postedTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_posted_total",
			Help:      "Journal transactions committed.",
		}),
		postedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posted_debits_total",
			Help:      "Sum of debit amounts committed.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_rejections_total",
			Help:      "Ledger operations refused, by operation and reason.",
		}, []string{"operation", "reason"}),
		periodTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "period_transitions_total",
			Help:      "Committed period status transitions.",
		}, []string{"from", "to"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent generating a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"report", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.postedTransactions,
		m.postedAmount,
		m.rejections,
		m.periodTransitions,
		m.reportDuration,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObservePosted records a committed transaction and its debit total.
func (m *LedgerMetrics) ObservePosted(debits float64) {
	if m == nil {
		return
	}
	m.postedTransactions.Inc()
	m.postedAmount.Add(debits)
}

// ObserveRejection records a refused operation classified by its error.
func (m *LedgerMetrics) ObserveRejection(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.rejections.WithLabelValues(operation, ClassifyReason(err)).Inc()
}

// ObserveTransition records a committed period status change.
func (m *LedgerMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.periodTransitions.WithLabelValues(from, to).Inc()
}

// ObserveReport records how long a report took.
func (m *LedgerMetrics) ObserveReport(report string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.reportDuration.WithLabelValues(report, outcome).Observe(time.Since(started).Seconds())
}

// ObserveHTTP records a served request.
func (m *LedgerMetrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ClassifyReason maps an error to a low-cardinality rejection reason.
func ClassifyReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonDeadlineExceeded
	case errors.Is(err, apperrors.ErrUnbalanced):
		return ReasonUnbalanced
	case errors.Is(err, apperrors.ErrNoPeriodForDate):
		return ReasonNoPeriod
	case errors.Is(err, apperrors.ErrPeriodClosed):
		return ReasonPeriodClosed
	case errors.Is(err, apperrors.ErrInactiveOrUnknownAccount):
		return ReasonInactiveAccount
	case errors.Is(err, apperrors.ErrInvalidState):
		return ReasonInvalidState
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidRange):
		return ReasonValidation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return ReasonSerialization
	}
	return ReasonUnknown
}
