package dto

import (
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every ledger date.
const DateLayout = "2006-01-02"

// CreatePeriodRequest defines the data needed to open a fiscal period.
type CreatePeriodRequest struct {
	Label              string           `json:"label" binding:"required,max=50"`
	StartDate          string           `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate            string           `json:"endDate" binding:"required,datetime=2006-01-02"`
	RevenueBudget      *decimal.Decimal `json:"revenueBudget" binding:"omitempty,nonnegative_decimal"`
	COGSBudget         *decimal.Decimal `json:"cogsBudget" binding:"omitempty,nonnegative_decimal"`
	OpexBudget         *decimal.Decimal `json:"opexBudget" binding:"omitempty,nonnegative_decimal"`
	OtherIncomeBudget  *decimal.Decimal `json:"otherIncomeBudget" binding:"omitempty,nonnegative_decimal"`
	OtherExpenseBudget *decimal.Decimal `json:"otherExpenseBudget" binding:"omitempty,nonnegative_decimal"`
}

// Budgets returns the requested budgets, zero where omitted.
func (r CreatePeriodRequest) Budgets() domain.Budgets {
	return domain.Budgets{
		Revenue:      orZero(r.RevenueBudget),
		COGS:         orZero(r.COGSBudget),
		Opex:         orZero(r.OpexBudget),
		OtherIncome:  orZero(r.OtherIncomeBudget),
		OtherExpense: orZero(r.OtherExpenseBudget),
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
	ID                 string              `json:"id"`
	Label              string              `json:"label"`
	StartDate          string              `json:"startDate"`
	EndDate            string              `json:"endDate"`
	Status             domain.PeriodStatus `json:"status"`
	RevenueBudget      decimal.Decimal     `json:"revenueBudget"`
	COGSBudget         decimal.Decimal     `json:"cogsBudget"`
	OpexBudget         decimal.Decimal     `json:"opexBudget"`
	OtherIncomeBudget  decimal.Decimal     `json:"otherIncomeBudget"`
	OtherExpenseBudget decimal.Decimal     `json:"otherExpenseBudget"`
	ClosedAt           *time.Time          `json:"closedAt,omitempty"`
	TimeToClose        *int                `json:"timeToClose,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	CreatedBy          string              `json:"createdBy"`
}

// ToPeriodResponse converts a domain.Period to its response DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		ID:                 p.ID,
		Label:              p.Label,
		StartDate:          p.StartDate.Format(DateLayout),
		EndDate:            p.EndDate.Format(DateLayout),
		Status:             p.Status,
		RevenueBudget:      p.Budgets.Revenue,
		COGSBudget:         p.Budgets.COGS,
		OpexBudget:         p.Budgets.Opex,
		OtherIncomeBudget:  p.Budgets.OtherIncome,
		OtherExpenseBudget: p.Budgets.OtherExpense,
		ClosedAt:           p.ClosedAt,
		TimeToClose:        p.TimeToClose,
		CreatedAt:          p.CreatedAt,
		CreatedBy:          p.CreatedBy,
	}
}

// ToListPeriodResponse converts periods to response DTOs.
func ToListPeriodResponse(periods []domain.Period) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return res
}

// RecentPeriodsParams defines query parameters for the recent periods listing.
type RecentPeriodsParams struct {
	Limit int `form:"limit,default=6" binding:"omitempty,min=1,max=100"`
}
