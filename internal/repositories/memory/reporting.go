package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SumAccountTotals(_ context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRef := make(map[string]*domain.AccountTotals)
	for _, txn := range s.transactions {
		if !inRange(txn.TransactionDate, from, to) {
			continue
		}
		for _, e := range txn.Entries {
			acc, ok := s.accounts[e.AccountRef]
			if !ok || !acc.IsActive() {
				continue
			}
			row, ok := byRef[acc.ID]
			if !ok {
				row = &domain.AccountTotals{
					AccountRef:  acc.ID,
					AccountID:   acc.AccountID,
					AccountName: acc.Name,
					AccountType: acc.Type,
					PLMapping:   acc.PLMapping,
					IsCurrent:   acc.IsCurrent,
					Debits:      decimal.Zero,
					Credits:     decimal.Zero,
				}
				byRef[acc.ID] = row
			}
			row.Debits = row.Debits.Add(e.DebitAmount)
			row.Credits = row.Credits.Add(e.CreditAmount)
		}
	}

	out := make([]domain.AccountTotals, 0, len(byRef))
	for _, row := range byRef {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *Store) SumBalancesBefore(_ context.Context, before time.Time, refs []string) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := refSet(refs)
	cutoff := domain.DateOnly(before)
	out := make(map[string]decimal.Decimal)
	for _, txn := range s.transactions {
		if !domain.DateOnly(txn.TransactionDate).Before(cutoff) {
			continue
		}
		for _, e := range txn.Entries {
			if !matches(filter, e.AccountRef) {
				continue
			}
			out[e.AccountRef] = out[e.AccountRef].Add(e.Signed())
		}
	}
	return out, nil
}

func (s *Store) ListLedgerLines(_ context.Context, from, to time.Time, refs []string) ([]domain.LedgerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := refSet(refs)
	var out []domain.LedgerLine
	for _, txn := range s.transactions {
		if !inRange(txn.TransactionDate, &from, to) {
			continue
		}
		for _, e := range txn.Entries {
			acc, ok := s.accounts[e.AccountRef]
			if !ok || !acc.IsActive() || !matches(filter, e.AccountRef) {
				continue
			}
			out = append(out, domain.LedgerLine{
				EntryID:         e.ID,
				TransactionID:   txn.ID,
				TransactionDate: txn.TransactionDate,
				AccountRef:      acc.ID,
				AccountID:       acc.AccountID,
				AccountName:     acc.Name,
				DebitAmount:     e.DebitAmount,
				CreditAmount:    e.CreditAmount,
				Description:     txn.Description,
			})
		}
	}
	return out, nil
}

func (s *Store) SumCashBefore(_ context.Context, before time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := domain.DateOnly(before)
	total := decimal.Zero
	for _, txn := range s.transactions {
		if !domain.DateOnly(txn.TransactionDate).Before(cutoff) {
			continue
		}
		for _, e := range txn.Entries {
			if acc, ok := s.accounts[e.AccountRef]; ok && acc.IsCashAccount {
				total = total.Add(e.Signed())
			}
		}
	}
	return total, nil
}

func (s *Store) ListCashLines(_ context.Context, from, to time.Time) ([]domain.CashLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CashLine
	for _, txn := range s.transactions {
		if !inRange(txn.TransactionDate, &from, to) {
			continue
		}
		touchesCash := false
		for _, e := range txn.Entries {
			if acc, ok := s.accounts[e.AccountRef]; ok && acc.IsCashAccount {
				touchesCash = true
				break
			}
		}
		if !touchesCash {
			continue
		}
		for _, e := range txn.Entries {
			acc := s.accounts[e.AccountRef]
			out = append(out, domain.CashLine{
				EntryID:       e.ID,
				TransactionID: txn.ID,
				AccountRef:    e.AccountRef,
				IsCashAccount: acc.IsCashAccount,
				CashSource:    acc.CashSource,
				DebitAmount:   e.DebitAmount,
				CreditAmount:  e.CreditAmount,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionID != out[j].TransactionID {
			return out[i].TransactionID < out[j].TransactionID
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}
