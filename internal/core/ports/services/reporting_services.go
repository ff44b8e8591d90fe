package services

import (
	"context"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates the trial balance of a period
	TrialBalance(ctx context.Context, periodID string) (*domain.TrialBalanceReport, error)

	// GeneralLedger lists entries in [from,to] with running balances. No accounts means every ACTIVE account.
	GeneralLedger(ctx context.Context, from, to time.Time, accountRefs []string) (*domain.GeneralLedgerReport, error)

	// IncomeStatement compares a period's results with its budgets
	IncomeStatement(ctx context.Context, periodID string) (*domain.IncomeStatement, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlow sections a period's cash movements and reconciles them to the cash balance
	CashFlow(ctx context.Context, periodID string) (*domain.CashFlowReport, error)
}
