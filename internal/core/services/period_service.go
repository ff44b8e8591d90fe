package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/observability/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultRecentPeriods = 6

// periodService implements the PeriodSvcFacade interface
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// PeriodServiceOption is a functional option for configuring the period service
type PeriodServiceOption func(*periodService)

// WithPeriodEventPublisher publishes status changes after they commit.
func WithPeriodEventPublisher(p portssvc.EventPublisher) PeriodServiceOption {
	return func(s *periodService) {
		s.Events = p
	}
}

// WithPeriodMetrics records transitions and refusals.
func WithPeriodMetrics(m *metrics.LedgerMetrics) PeriodServiceOption {
	return func(s *periodService) {
		s.Metrics = m
	}
}

// WithPeriodClock overrides the time source used for audit fields and close stamps.
func WithPeriodClock(clock func() time.Time) PeriodServiceOption {
	return func(s *periodService) {
		s.Clock = clock
	}
}

// NewPeriodService creates a new period service with the provided options
func NewPeriodService(repo portsrepo.PeriodRepositoryFacade, options ...PeriodServiceOption) portssvc.PeriodSvcFacade {
	svc := &periodService{periodRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// parseDate parses a wire date. Failures are validation errors naming the field.
func parseDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be formatted as %s", apperrors.ErrValidation, field, dto.DateLayout)
	}
	return t, nil
}

func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.Period, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", apperrors.ErrValidation)
	}
	if len(label) > domain.MaxPeriodLabelLength {
		return nil, fmt.Errorf("%w: label exceeds %d characters", apperrors.ErrValidation, domain.MaxPeriodLabelLength)
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrInvalidRange, req.StartDate, req.EndDate)
	}

	budgets := req.Budgets()
	for _, b := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"revenueBudget", budgets.Revenue},
		{"cogsBudget", budgets.COGS},
		{"opexBudget", budgets.Opex},
		{"otherIncomeBudget", budgets.OtherIncome},
		{"otherExpenseBudget", budgets.OtherExpense},
	} {
		if b.value.IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, b.name)
		}
	}

	overlapping, err := s.periodRepo.FindOverlappingPeriods(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period overlap")
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: [%s, %s] intersects period %q",
			apperrors.ErrPeriodOverlap, req.StartDate, req.EndDate, overlapping[0].Label)
	}

	now := s.Now()
	period := domain.Period{
		ID:        uuid.NewString(),
		Label:     label,
		StartDate: start,
		EndDate:   end,
		Status:    domain.PeriodOpen,
		Budgets:   budgets,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrPeriodOverlap) {
			s.LogError(ctx, err, "Failed to save period", slog.String("label", label))
		}
		return nil, fmt.Errorf("failed to create period %q: %w", label, err)
	}

	s.LogInfo(ctx, "Period created", slog.String("period_id", period.ID), slog.String("label", label))
	return &period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, id string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period", slog.String("period_id", id))
		}
		return nil, err
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods")
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		return []domain.Period{}, nil
	}
	return periods, nil
}

func (s *periodService) ListRecentPeriods(ctx context.Context, limit int) ([]domain.Period, error) {
	if limit <= 0 {
		limit = defaultRecentPeriods
	}
	periods, err := s.periodRepo.ListRecentPeriods(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent periods", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list recent periods: %w", err)
	}
	if periods == nil {
		return []domain.Period{}, nil
	}
	return periods, nil
}

func (s *periodService) ResolvePeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, domain.DateOnly(date))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoPeriodForDate, date.Format(dto.DateLayout))
		}
		s.LogError(ctx, err, "Failed to resolve period for date")
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	return period, nil
}

// StartClosing moves an OPEN period to CLOSING once its entries are verified to balance.
func (s *periodService) StartClosing(ctx context.Context, id string, userID string) (*domain.Period, error) {
	return s.transition(ctx, id, domain.PeriodClosing, func(p *domain.Period, totals domain.Totals) error {
		if !totals.Balanced() {
			return fmt.Errorf("%w: period %s debits sum is %s and credits sum is %s",
				apperrors.ErrUnbalanced, p.Label, totals.Debits.String(), totals.Credits.String())
		}
		p.Status = domain.PeriodClosing
		p.LastUpdatedAt = s.Now()
		p.LastUpdatedBy = userID
		return nil
	})
}

// LockPeriod moves a CLOSING period to CLOSED and stamps the close.
func (s *periodService) LockPeriod(ctx context.Context, id string, userID string) (*domain.Period, error) {
	return s.transition(ctx, id, domain.PeriodClosed, func(p *domain.Period, _ domain.Totals) error {
		now := s.Now()
		p.MarkClosed(now)
		p.LastUpdatedAt = now
		p.LastUpdatedBy = userID
		return nil
	})
}

// transition validates the state machine edge under the repository's row lock, then runs apply.
func (s *periodService) transition(ctx context.Context, id string, next domain.PeriodStatus, apply portsrepo.PeriodTransitionFunc) (*domain.Period, error) {
	var from domain.PeriodStatus
	period, err := s.periodRepo.TransitionPeriod(ctx, id, func(p *domain.Period, totals domain.Totals) error {
		from = p.Status
		if err := p.ValidateTransition(next); err != nil {
			return err
		}
		return apply(p, totals)
	})
	if err != nil {
		operation := "period_" + strings.ToLower(string(next))
		s.Metrics.ObserveRejection(operation, err)
		switch {
		case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrUnbalanced), errors.Is(err, apperrors.ErrNotFound):
			s.LogWarn(ctx, err, "Period transition refused", slog.String("period_id", id), slog.String("to", string(next)))
		default:
			s.LogError(ctx, err, "Period transition failed", slog.String("period_id", id), slog.String("to", string(next)))
		}
		return nil, err
	}

	s.Metrics.ObserveTransition(string(from), string(period.Status))
	s.LogInfo(ctx, "Period status changed",
		slog.String("period_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(period.Status)))
	s.Publish(ctx, domain.TopicPeriodStatusChanged, period.ID, domain.PeriodStatusChangedEvent{
		PeriodID:   period.ID,
		Label:      period.Label,
		From:       from,
		To:         period.Status,
		OccurredAt: s.Now(),
	})
	return period, nil
}
