package dto

import (
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRatioRequest defines a new ratio benchmark.
type CreateRatioRequest struct {
	RatioName        string          `json:"ratioName" binding:"required,max=100"`
	BenchmarkValue   decimal.Decimal `json:"benchmarkValue"`
	WarningThreshold decimal.Decimal `json:"warningThreshold"`
}

// UpdateRatioRequest patches a ratio benchmark. Omitted fields are left unchanged.
type UpdateRatioRequest struct {
	RatioName        *string          `json:"ratioName" binding:"omitempty,min=1,max=100"`
	BenchmarkValue   *decimal.Decimal `json:"benchmarkValue"`
	WarningThreshold *decimal.Decimal `json:"warningThreshold"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateRatioRequest) ToPatch() domain.RatioPatch {
	return domain.RatioPatch{
		RatioName:        r.RatioName,
		BenchmarkValue:   r.BenchmarkValue,
		WarningThreshold: r.WarningThreshold,
	}
}

// RatioResponse is a ratio benchmark.
type RatioResponse struct {
	ID               string          `json:"id"`
	RatioName        string          `json:"ratioName"`
	BenchmarkValue   decimal.Decimal `json:"benchmarkValue"`
	WarningThreshold decimal.Decimal `json:"warningThreshold"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToRatioResponse converts a domain ratio to its response DTO.
func ToRatioResponse(r *domain.Ratio) RatioResponse {
	return RatioResponse{
		ID:               r.ID,
		RatioName:        r.RatioName,
		BenchmarkValue:   r.BenchmarkValue,
		WarningThreshold: r.WarningThreshold,
		CreatedAt:        r.CreatedAt,
		LastUpdatedAt:    r.LastUpdatedAt,
	}
}

// ToListRatioResponse converts ratios to response DTOs.
func ToListRatioResponse(ratios []domain.Ratio) []RatioResponse {
	res := make([]RatioResponse, len(ratios))
	for i := range ratios {
		res[i] = ToRatioResponse(&ratios[i])
	}
	return res
}

// RevenueForecastRequest carries the two most recent quarterly revenues.
type RevenueForecastRequest struct {
	RevenueTwoQuartersAgo decimal.Decimal `json:"revenueTwoQuartersAgo" binding:"nonnegative_decimal"`
	RevenueLastQuarter    decimal.Decimal `json:"revenueLastQuarter" binding:"nonnegative_decimal"`
}

// RevenueForecastResponse is the predicted revenue of the next quarter.
type RevenueForecastResponse struct {
	PredictedNextQuarterRevenue decimal.Decimal `json:"predictedNextQuarterRevenue"`
}
