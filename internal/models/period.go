package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a row of the periods table.
type Period struct {
	ID                 string          `db:"id"`
	Label              string          `db:"label"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
	Status             string          `db:"status"`
	RevenueBudget      decimal.Decimal `db:"revenue_budget"`
	COGSBudget         decimal.Decimal `db:"cogs_budget"`
	OpexBudget         decimal.Decimal `db:"opex_budget"`
	OtherIncomeBudget  decimal.Decimal `db:"other_income_budget"`
	OtherExpenseBudget decimal.Decimal `db:"other_expense_budget"`
	ClosedAt           *time.Time      `db:"closed_at"`
	TimeToClose        *int            `db:"time_to_close"`
	AuditFields
}
