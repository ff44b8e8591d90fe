package repositories

import (
	"context"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

// RatioRepositoryFacade defines storage for ratio benchmarks
type RatioRepositoryFacade interface {
	SaveRatio(ctx context.Context, ratio domain.Ratio) error
	UpdateRatio(ctx context.Context, ratio domain.Ratio) error
	FindRatioByID(ctx context.Context, id string) (*domain.Ratio, error)
	ListRatios(ctx context.Context) ([]domain.Ratio, error)
}
