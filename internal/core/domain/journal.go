package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalTransaction is a balanced set of entries posted on a single date.
// It belongs to the period whose range contains TransactionDate and is immutable once posted.
type JournalTransaction struct {
	ID              string         `json:"id"` // ULID, sorts in posting order
	PeriodID        string         `json:"periodId"`
	TransactionDate time.Time      `json:"transactionDate"`
	Description     string         `json:"description"`
	PostedByUserID  string         `json:"postedByUserId"`
	CreatedAt       time.Time      `json:"createdAt"`
	Entries         []JournalEntry `json:"entries"`
}

// AmountScale is the number of decimal places an entry amount may carry.
const AmountScale = 2

// HasAmountScale reports whether d carries no digits beyond AmountScale.
func HasAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// JournalEntry is one debit and/or credit line of a transaction against a single account.
type JournalEntry struct {
	ID            string          `json:"id"` // ULID
	TransactionID string          `json:"transactionId"`
	AccountRef    string          `json:"accountRef"` // Account.ID
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`

	// Read-back display fields, never persisted on the entry.
	AccountCode string `json:"accountCode,omitempty"`
	AccountName string `json:"accountName,omitempty"`
}

// Signed returns debit minus credit.
func (e JournalEntry) Signed() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}

// Totals is a pair of independent debit and credit sums.
type Totals struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
}

// Add accumulates one entry.
func (t Totals) Add(debit, credit decimal.Decimal) Totals {
	return Totals{Debits: t.Debits.Add(debit), Credits: t.Credits.Add(credit)}
}

// Balanced reports exact equality of the two sums.
func (t Totals) Balanced() bool {
	return t.Debits.Equal(t.Credits)
}

// SumEntries totals the debit and credit sides of entries at full precision.
func SumEntries(entries []JournalEntry) Totals {
	totals := Totals{Debits: decimal.Zero, Credits: decimal.Zero}
	for _, e := range entries {
		totals = totals.Add(e.DebitAmount, e.CreditAmount)
	}
	return totals
}

// AccountRefs returns the distinct account references of entries in first-seen order.
func AccountRefs(entries []JournalEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	refs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountRef]; ok {
			continue
		}
		seen[e.AccountRef] = struct{}{}
		refs = append(refs, e.AccountRef)
	}
	return refs
}
