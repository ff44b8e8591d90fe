package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/google/uuid"
)

type ratioService struct {
	BaseService
	ratioRepo portsrepo.RatioRepositoryFacade
}

// NewRatioService creates the ratio benchmark service.
func NewRatioService(repo portsrepo.RatioRepositoryFacade) portssvc.RatioSvcFacade {
	return &ratioService{ratioRepo: repo}
}

var _ portssvc.RatioSvcFacade = (*ratioService)(nil)

func (s *ratioService) CreateRatio(ctx context.Context, req dto.CreateRatioRequest, userID string) (*domain.Ratio, error) {
	name := strings.TrimSpace(req.RatioName)
	if name == "" {
		return nil, fmt.Errorf("%w: ratio name is required", apperrors.ErrValidation)
	}
	now := s.Now()
	ratio := domain.Ratio{
		ID:               uuid.NewString(),
		RatioName:        name,
		BenchmarkValue:   req.BenchmarkValue,
		WarningThreshold: req.WarningThreshold,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.ratioRepo.SaveRatio(ctx, ratio); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save ratio", slog.String("ratio_name", name))
		}
		return nil, fmt.Errorf("failed to create ratio %q: %w", name, err)
	}
	return &ratio, nil
}

func (s *ratioService) UpdateRatio(ctx context.Context, id string, req dto.UpdateRatioRequest, userID string) (*domain.Ratio, error) {
	current, err := s.GetRatioByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := req.ToPatch().Apply(*current)
	updated.RatioName = strings.TrimSpace(updated.RatioName)
	if updated.RatioName == "" {
		return nil, fmt.Errorf("%w: ratio name must not be blank", apperrors.ErrValidation)
	}
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	if err := s.ratioRepo.UpdateRatio(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update ratio", slog.String("ratio_id", id))
		}
		return nil, fmt.Errorf("failed to update ratio %s: %w", id, err)
	}
	return &updated, nil
}

func (s *ratioService) GetRatioByID(ctx context.Context, id string) (*domain.Ratio, error) {
	ratio, err := s.ratioRepo.FindRatioByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ratio", slog.String("ratio_id", id))
		}
		return nil, err
	}
	return ratio, nil
}

func (s *ratioService) ListRatios(ctx context.Context) ([]domain.Ratio, error) {
	ratios, err := s.ratioRepo.ListRatios(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ratios")
		return nil, fmt.Errorf("failed to list ratios: %w", err)
	}
	if ratios == nil {
		return []domain.Ratio{}, nil
	}
	return ratios, nil
}
