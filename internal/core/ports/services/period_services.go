package services

import (
	"context"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal periods
type PeriodReaderSvc interface {
	GetPeriodByID(ctx context.Context, id string) (*domain.Period, error)

	// ListPeriods returns every period ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// ListRecentPeriods returns the latest periods by end date. A non-positive limit means 6.
	ListRecentPeriods(ctx context.Context, limit int) ([]domain.Period, error)

	// ResolvePeriodForDate returns the period containing date or ErrNoPeriodForDate.
	ResolvePeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error)
}

// PeriodWriterSvc defines period creation
type PeriodWriterSvc interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.Period, error)
}

// PeriodLifecycleSvc drives the OPEN -> CLOSING -> CLOSED state machine
type PeriodLifecycleSvc interface {
	// StartClosing moves an OPEN period to CLOSING after verifying its entries balance.
	StartClosing(ctx context.Context, id string, userID string) (*domain.Period, error)

	// LockPeriod moves a CLOSING period to CLOSED and records the time to close.
	LockPeriod(ctx context.Context, id string, userID string) (*domain.Period, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
	PeriodLifecycleSvc
}
