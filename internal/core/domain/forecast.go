package domain

import "github.com/shopspring/decimal"

// RevenueForecast is the prediction of an external revenue model for the quarter
// following the supplied history (oldest first).
type RevenueForecast struct {
	History   []decimal.Decimal `json:"history"`
	Predicted decimal.Decimal   `json:"predictedNextQuarterRevenue"`
}
