package repositories

import (
	"context"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

// PeriodReader defines read operations for fiscal periods
type PeriodReader interface {
	// FindPeriodByID retrieves a period by id.
	FindPeriodByID(ctx context.Context, id string) (*domain.Period, error)

	// FindPeriodForDate returns the period whose inclusive range contains date, or ErrNotFound.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error)

	// FindOverlappingPeriods returns every period intersecting [start,end], both ends inclusive.
	FindOverlappingPeriods(ctx context.Context, start, end time.Time) ([]domain.Period, error)

	// ListPeriods returns all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// ListRecentPeriods returns up to limit periods ordered by end date, newest first.
	ListRecentPeriods(ctx context.Context, limit int) ([]domain.Period, error)
}

// PeriodWriter defines write operations for fiscal periods
type PeriodWriter interface {
	// SavePeriod persists a new period. Returns ErrDuplicate for a taken label
	// and ErrPeriodOverlap when the range collides with a stored period.
	SavePeriod(ctx context.Context, period domain.Period) error
}

// PeriodTransitionFunc mutates a locked period. totals are the debit and credit sums
// of every entry posted into the period, read under the same lock.
type PeriodTransitionFunc func(period *domain.Period, totals domain.Totals) error

// PeriodLifecycleManager serializes status changes against postings
type PeriodLifecycleManager interface {
	// TransitionPeriod locks the period row exclusively, hands it to apply together with the
	// period's entry totals and persists the result. Nothing is written when apply fails.
	TransitionPeriod(ctx context.Context, id string, apply PeriodTransitionFunc) (*domain.Period, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
	PeriodLifecycleManager
}
