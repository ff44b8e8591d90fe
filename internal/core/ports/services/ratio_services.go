package services

import (
	"context"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// RatioSvcFacade manages financial ratio benchmarks
type RatioSvcFacade interface {
	CreateRatio(ctx context.Context, req dto.CreateRatioRequest, userID string) (*domain.Ratio, error)
	UpdateRatio(ctx context.Context, id string, req dto.UpdateRatioRequest, userID string) (*domain.Ratio, error)
	GetRatioByID(ctx context.Context, id string) (*domain.Ratio, error)
	ListRatios(ctx context.Context) ([]domain.Ratio, error)
}

// RevenueForecaster predicts next quarter revenue from quarterly history, oldest first.
// Implementations live outside the ledger core.
type RevenueForecaster interface {
	ForecastRevenue(ctx context.Context, history []decimal.Decimal) (*domain.RevenueForecast, error)
}
