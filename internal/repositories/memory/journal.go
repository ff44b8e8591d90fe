package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/pagination"
)

// SaveJournalTransaction re-checks the period and accounts under the write lock before storing.
func (s *Store) SaveJournalTransaction(_ context.Context, txn domain.JournalTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	period, ok := s.periods[txn.PeriodID]
	if !ok {
		return apperrors.NewNotFoundError("period", txn.PeriodID)
	}
	if !period.AcceptsPostings() {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, period.Label, period.Status)
	}
	refs := domain.AccountRefs(txn.Entries)
	for _, ref := range refs {
		acc, ok := s.accounts[ref]
		if !ok || !acc.IsActive() {
			return fmt.Errorf("%w: %s", apperrors.ErrInactiveOrUnknownAccount, ref)
		}
	}
	if _, ok := s.transactions[txn.ID]; ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.ID)
	}

	stored := txn
	stored.Entries = make([]domain.JournalEntry, len(txn.Entries))
	for i, e := range txn.Entries {
		e.AccountCode, e.AccountName = "", ""
		stored.Entries[i] = e
	}
	s.transactions[txn.ID] = stored

	for _, ref := range refs {
		acc := s.accounts[ref]
		if !acc.HasTransactions {
			acc.HasTransactions = true
			acc.LastUpdatedAt = txn.CreatedAt
			s.accounts[ref] = acc
		}
	}
	return nil
}

func (s *Store) FindTransactionByID(_ context.Context, id string) (*domain.JournalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction", id)
	}
	out := s.withAccountNamesLocked(txn)
	return &out, nil
}

// ListTransactions pages newest first by (transaction date, id).
func (s *Store) ListTransactions(_ context.Context, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.JournalTransaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		all = append(all, txn)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].TransactionDate.Equal(all[j].TransactionDate) {
			return all[i].TransactionDate.After(all[j].TransactionDate)
		}
		return all[i].ID > all[j].ID
	})

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		start := len(all)
		for i, txn := range all {
			if pagination.After(txn.TransactionDate, txn.ID, cursorDate, cursorID) {
				start = i
				break
			}
		}
		all = all[start:]
	}

	var next *string
	if limit > 0 && len(all) > limit {
		all = all[:limit]
		last := all[len(all)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.ID)
		next = &token
	}

	out := make([]domain.JournalTransaction, len(all))
	for i, txn := range all {
		out[i] = s.withAccountNamesLocked(txn)
	}
	return out, next, nil
}

func (s *Store) withAccountNamesLocked(txn domain.JournalTransaction) domain.JournalTransaction {
	entries := make([]domain.JournalEntry, len(txn.Entries))
	for i, e := range txn.Entries {
		if acc, ok := s.accounts[e.AccountRef]; ok {
			e.AccountCode = acc.AccountID
			e.AccountName = acc.Name
		}
		entries[i] = e
	}
	txn.Entries = entries
	return txn
}
