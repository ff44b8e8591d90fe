package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

func (s *Store) FindAccountByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", id)
	}
	return &acc, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, ids []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		if acc, ok := s.accounts[id]; ok {
			found[id] = acc
		}
	}
	return found, nil
}

func (s *Store) ListAccounts(_ context.Context, limit int, offset int) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		all = append(all, acc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AccountID < all[j].AccountID })

	if offset >= len(all) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *Store) ListActiveAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if acc.IsActive() {
			active = append(active, acc)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].AccountID < active[j].AccountID })
	return active, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.ID)
	}
	if err := s.checkAccountUniqueLocked(account); err != nil {
		return err
	}
	s.accounts[account.ID] = account
	return nil
}

// UpdateAccount overwrites an account. has_transactions is owned by posting and is never cleared here.
func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[account.ID]
	if !ok {
		return apperrors.NewNotFoundError("account", account.ID)
	}
	if err := s.checkAccountUniqueLocked(account); err != nil {
		return err
	}
	if current.HasTransactions && current.FrozenFieldsDiffer(account) {
		return domain.FrozenFieldsError(account.ID)
	}
	account.HasTransactions = account.HasTransactions || current.HasTransactions
	account.CreatedAt = current.CreatedAt
	account.CreatedBy = current.CreatedBy
	s.accounts[account.ID] = account
	return nil
}

func (s *Store) checkAccountUniqueLocked(account domain.Account) error {
	for id, other := range s.accounts {
		if id == account.ID {
			continue
		}
		if other.AccountID == account.AccountID {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.AccountID)
		}
		if other.Name == account.Name {
			return fmt.Errorf("%w: account name %q", apperrors.ErrDuplicate, account.Name)
		}
	}
	return nil
}

// ToggleAccountStatus flips the status of the stored account only.
func (s *Store) ToggleAccountStatus(_ context.Context, id string, updatedAt time.Time, updatedBy string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", id)
	}
	acc.Status = acc.ToggledStatus()
	acc.LastUpdatedAt = updatedAt
	acc.LastUpdatedBy = updatedBy
	s.accounts[id] = acc
	return &acc, nil
}
