package repositories

import (
	"context"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository reads the posted entries that feed the financial reports.
// All date bounds are inclusive calendar dates.
type ReportingRepository interface {
	// SumAccountTotals returns debit and credit sums per ACTIVE account over entries dated in
	// [from,to]. A nil from means no lower bound. Accounts without entries are omitted.
	SumAccountTotals(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error)

	// SumBalancesBefore returns debit minus credit per account over entries dated strictly
	// before the cut-off, regardless of account status. An empty refs slice means all accounts.
	SumBalancesBefore(ctx context.Context, before time.Time, refs []string) (map[string]decimal.Decimal, error)

	// ListLedgerLines returns the entries of ACTIVE accounts dated in [from,to], ordered by
	// account code, date, transaction id and entry id. An empty refs slice means all accounts.
	ListLedgerLines(ctx context.Context, from, to time.Time, refs []string) ([]domain.LedgerLine, error)

	// SumCashBefore returns debit minus credit over cash-account entries dated strictly before the cut-off.
	SumCashBefore(ctx context.Context, before time.Time) (decimal.Decimal, error)

	// ListCashLines returns every entry of every transaction in [from,to] that touches a cash account.
	ListCashLines(ctx context.Context, from, to time.Time) ([]domain.CashLine, error)
}
