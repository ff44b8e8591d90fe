package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
)

func (s *Store) FindPeriodByID(_ context.Context, id string) (*domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.periods[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("period", id)
	}
	return &p, nil
}

func (s *Store) FindPeriodForDate(_ context.Context, date time.Time) (*domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.periodForDateLocked(date); ok {
		return &p, nil
	}
	return nil, apperrors.NewNotFoundError("period for date", date.Format(time.DateOnly))
}

func (s *Store) periodForDateLocked(date time.Time) (domain.Period, bool) {
	for _, p := range s.periods {
		if p.Contains(date) {
			return p, true
		}
	}
	return domain.Period{}, false
}

func (s *Store) FindOverlappingPeriods(_ context.Context, start, end time.Time) ([]domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlappingLocked(start, end), nil
}

func (s *Store) overlappingLocked(start, end time.Time) []domain.Period {
	var out []domain.Period
	for _, p := range s.periods {
		if p.Overlaps(start, end) {
			out = append(out, p)
		}
	}
	sortByStart(out)
	return out
}

func (s *Store) ListPeriods(_ context.Context) ([]domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Period, 0, len(s.periods))
	for _, p := range s.periods {
		out = append(out, p)
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListRecentPeriods(_ context.Context, limit int) ([]domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Period, 0, len(s.periods))
	for _, p := range s.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SavePeriod enforces label uniqueness and range exclusivity under the write lock,
// mirroring the unique index and exclusion constraint of the SQL schema.
func (s *Store) SavePeriod(_ context.Context, period domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.periods {
		if other.ID == period.ID || other.Label == period.Label {
			return fmt.Errorf("%w: period label %q", apperrors.ErrDuplicate, period.Label)
		}
	}
	if clash := s.overlappingLocked(period.StartDate, period.EndDate); len(clash) > 0 {
		return fmt.Errorf("%w: intersects period %q", apperrors.ErrPeriodOverlap, clash[0].Label)
	}
	s.periods[period.ID] = period
	return nil
}

// TransitionPeriod holds the write lock for the whole read-check-write, so no posting
// can land in the period between the totals check and the status change.
func (s *Store) TransitionPeriod(_ context.Context, id string, apply portsrepo.PeriodTransitionFunc) (*domain.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.periods[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("period", id)
	}

	totals := domain.Totals{}
	for _, txn := range s.transactions {
		if txn.PeriodID != id {
			continue
		}
		for _, e := range txn.Entries {
			totals = totals.Add(e.DebitAmount, e.CreditAmount)
		}
	}

	updated := current
	if err := apply(&updated, totals); err != nil {
		return nil, err
	}
	s.periods[id] = updated
	return &updated, nil
}

func sortByStart(periods []domain.Period) {
	sort.Slice(periods, func(i, j int) bool { return periods[i].StartDate.Before(periods[j].StartDate) })
}
