package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalTransaction is a row of the journal_transactions table.
type JournalTransaction struct {
	ID              string    `db:"id"`
	PeriodID        string    `db:"period_id"`
	TransactionDate time.Time `db:"transaction_date"`
	Description     string    `db:"description"`
	PostedByUserID  string    `db:"posted_by_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}

// JournalEntry is a row of the journal_entries table. AccountCode and AccountName
// are only filled when the row is read joined with its account.
type JournalEntry struct {
	ID            string          `db:"id"`
	TransactionID string          `db:"transaction_id"`
	AccountRef    string          `db:"account_ref"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	AccountCode   string          `db:"account_code"`
	AccountName   string          `db:"account_name"`
}
