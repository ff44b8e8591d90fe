package domain

import (
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PeriodStatus is the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen    PeriodStatus = "OPEN"
	PeriodClosing PeriodStatus = "CLOSING"
	PeriodClosed  PeriodStatus = "CLOSED"
)

// MaxPeriodLabelLength bounds the unique period label.
const MaxPeriodLabelLength = 50

// nextStatus is the only permitted successor of each state. CLOSED is terminal.
var nextStatus = map[PeriodStatus]PeriodStatus{
	PeriodOpen:    PeriodClosing,
	PeriodClosing: PeriodClosed,
}

// Budgets holds the planned amount per income statement bucket.
type Budgets struct {
	Revenue      decimal.Decimal `json:"revenueBudget"`
	COGS         decimal.Decimal `json:"cogsBudget"`
	Opex         decimal.Decimal `json:"opexBudget"`
	OtherIncome  decimal.Decimal `json:"otherIncomeBudget"`
	OtherExpense decimal.Decimal `json:"otherExpenseBudget"`
}

// Period is a fiscal period with an inclusive date range.
type Period struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	Status      PeriodStatus `json:"status"`
	Budgets     Budgets      `json:"budgets"`
	ClosedAt    *time.Time   `json:"closedAt,omitempty"`
	TimeToClose *int         `json:"timeToClose,omitempty"` // days from creation to close
	AuditFields
}

// Contains reports whether date falls inside the inclusive period range.
func (p Period) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps reports whether [start,end] intersects the period range, both ends inclusive.
func (p Period) Overlaps(start, end time.Time) bool {
	return !DateOnly(p.StartDate).After(DateOnly(end)) && !DateOnly(p.EndDate).Before(DateOnly(start))
}

// AcceptsPostings reports whether new transactions may be dated into the period.
func (p Period) AcceptsPostings() bool {
	return p.Status == PeriodOpen
}

// ValidateTransition returns a StateError unless next is the immediate successor of the current status.
func (p Period) ValidateTransition(next PeriodStatus) error {
	if want, ok := nextStatus[p.Status]; ok && want == next {
		return nil
	}
	required := PeriodOpen
	if next == PeriodClosed {
		required = PeriodClosing
	}
	return apperrors.NewStateError("period", p.ID, string(p.Status), string(required))
}

// MarkClosed stamps the close time and the days elapsed since creation.
func (p *Period) MarkClosed(now time.Time) {
	closedAt := now.UTC()
	days := DaysBetween(p.CreatedAt, closedAt)
	p.Status = PeriodClosed
	p.ClosedAt = &closedAt
	p.TimeToClose = &days
}

// DaysBetween counts whole calendar days between the dates of from and to.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
