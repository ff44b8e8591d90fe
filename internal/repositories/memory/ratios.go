package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

func (s *Store) SaveRatio(_ context.Context, ratio domain.Ratio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRatioNameLocked(ratio); err != nil {
		return err
	}
	s.ratios[ratio.ID] = ratio
	return nil
}

func (s *Store) UpdateRatio(_ context.Context, ratio domain.Ratio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.ratios[ratio.ID]
	if !ok {
		return apperrors.NewNotFoundError("ratio", ratio.ID)
	}
	if err := s.checkRatioNameLocked(ratio); err != nil {
		return err
	}
	ratio.CreatedAt = current.CreatedAt
	ratio.CreatedBy = current.CreatedBy
	s.ratios[ratio.ID] = ratio
	return nil
}

func (s *Store) FindRatioByID(_ context.Context, id string) (*domain.Ratio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ratios[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("ratio", id)
	}
	return &r, nil
}

func (s *Store) ListRatios(_ context.Context) ([]domain.Ratio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ratio, 0, len(s.ratios))
	for _, r := range s.ratios {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RatioName < out[j].RatioName })
	return out, nil
}

func (s *Store) checkRatioNameLocked(ratio domain.Ratio) error {
	for id, other := range s.ratios {
		if id != ratio.ID && other.RatioName == ratio.RatioName {
			return fmt.Errorf("%w: ratio %q", apperrors.ErrDuplicate, ratio.RatioName)
		}
	}
	return nil
}
