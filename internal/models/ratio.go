package models

import "github.com/shopspring/decimal"

// Ratio is a row of the financial_ratios table.
type Ratio struct {
	ID               string          `db:"id"`
	RatioName        string          `db:"ratio_name"`
	BenchmarkValue   decimal.Decimal `db:"benchmark_value"`
	WarningThreshold decimal.Decimal `db:"warning_threshold"`
	AuditFields
}
