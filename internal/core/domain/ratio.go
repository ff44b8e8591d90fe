package domain

import "github.com/shopspring/decimal"

// Ratio is a named financial ratio benchmark with a warning threshold.
type Ratio struct {
	ID               string          `json:"id"`
	RatioName        string          `json:"ratioName"`
	BenchmarkValue   decimal.Decimal `json:"benchmarkValue"`
	WarningThreshold decimal.Decimal `json:"warningThreshold"`
	AuditFields
}

// RatioPatch holds the optional fields of a ratio update.
type RatioPatch struct {
	RatioName        *string
	BenchmarkValue   *decimal.Decimal
	WarningThreshold *decimal.Decimal
}

// Apply copies every provided field onto r.
func (p RatioPatch) Apply(r Ratio) Ratio {
	if p.RatioName != nil {
		r.RatioName = *p.RatioName
	}
	if p.BenchmarkValue != nil {
		r.BenchmarkValue = *p.BenchmarkValue
	}
	if p.WarningThreshold != nil {
		r.WarningThreshold = *p.WarningThreshold
	}
	return r
}
