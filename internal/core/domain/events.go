package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event topics published after a ledger change commits.
const (
	TopicTransactionPosted   = "ledger.transaction.posted"
	TopicPeriodStatusChanged = "ledger.period.status_changed"
)

// TransactionPostedEvent announces a committed journal transaction.
type TransactionPostedEvent struct {
	TransactionID   string          `json:"transactionId"`
	PeriodID        string          `json:"periodId"`
	TransactionDate time.Time       `json:"transactionDate"`
	PostedByUserID  string          `json:"postedByUserId"`
	Amount          decimal.Decimal `json:"amount"` // total of the debit side
	EntryCount      int             `json:"entryCount"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// PeriodStatusChangedEvent announces a committed period transition.
type PeriodStatusChangedEvent struct {
	PeriodID   string       `json:"periodId"`
	Label      string       `json:"label"`
	From       PeriodStatus `json:"from"`
	To         PeriodStatus `json:"to"`
	OccurredAt time.Time    `json:"occurredAt"`
}
