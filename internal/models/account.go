package models

// Account is a row of the chart_of_accounts table.
type Account struct {
	ID              string `db:"id"`
	AccountID       string `db:"account_id"` // business code
	Name            string `db:"name"`
	AccountType     string `db:"account_type"`
	PLMapping       string `db:"pl_mapping"`
	CashSource      string `db:"cash_source"`
	IsCashAccount   bool   `db:"is_cash_account"`
	IsCurrent       bool   `db:"is_current"`
	Status          string `db:"status"`
	HasTransactions bool   `db:"has_transactions"`
	Description     string `db:"description"`
	AuditFields
}
