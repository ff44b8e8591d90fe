package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report validation outcomes.
const (
	ReportBalanced   = "Balanced"
	ReportUnbalanced = "Unbalanced"
)

// AccountTotals is the independent debit and credit sum of one account over a date window.
type AccountTotals struct {
	AccountRef  string          `json:"accountRef"`
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	PLMapping   PLMapping       `json:"plMapping"`
	IsCurrent   bool            `json:"isCurrent"`
	Debits      decimal.Decimal `json:"totalDebits"`
	Credits     decimal.Decimal `json:"totalCredits"`
}

// LedgerLine is a posted entry joined with its transaction and account, as read for the general ledger.
type LedgerLine struct {
	EntryID         string          `json:"entryId"`
	TransactionID   string          `json:"transactionId"`
	TransactionDate time.Time       `json:"transactionDate"`
	AccountRef      string          `json:"accountRef"`
	AccountID       string          `json:"accountId"`
	AccountName     string          `json:"accountName"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	Description     string          `json:"description"`
}

// CashLine is an entry of a transaction that touches at least one cash account,
// carrying the classification of the entry's account.
type CashLine struct {
	EntryID       string
	TransactionID string
	AccountRef    string
	IsCashAccount bool
	CashSource    CashSource
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
}

// TrialBalanceRow is one account line of a trial balance.
// Exactly one of DebitBalance and CreditBalance is set.
type TrialBalanceRow struct {
	AccountID     string           `json:"accountId"`
	AccountName   string           `json:"accountName"`
	AccountType   AccountType      `json:"accountType"`
	TotalDebits   decimal.Decimal  `json:"totalDebits"`
	TotalCredits  decimal.Decimal  `json:"totalCredits"`
	DebitBalance  *decimal.Decimal `json:"debitBalance"`
	CreditBalance *decimal.Decimal `json:"creditBalance"`
	Abnormal      bool             `json:"abnormal"`
}

// TrialBalanceReport is the trial balance of a single period.
type TrialBalanceReport struct {
	PeriodID     string            `json:"periodId"`
	PeriodLabel  string            `json:"periodLabel"`
	PeriodStatus PeriodStatus      `json:"periodStatus"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Status       string            `json:"status"`
}

// GLRow is a general ledger line with the account's running balance after it.
type GLRow struct {
	LedgerLine
	SignedAmount   decimal.Decimal `json:"signedAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport lists ledger lines for a date range.
type GeneralLedgerReport struct {
	FromDate   time.Time `json:"fromDate"`
	ToDate     time.Time `json:"toDate"`
	AccountIDs []string  `json:"accountIds"`
	Rows       []GLRow   `json:"rows"`
}

// IncomeFigures is one column (actual or budget) of an income statement.
type IncomeFigures struct {
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	Opex         decimal.Decimal `json:"opex"`
	OtherIncome  decimal.Decimal `json:"otherIncome"`
	OtherExpense decimal.Decimal `json:"otherExpense"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	EBIT         decimal.Decimal `json:"ebit"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// IncomeVariance is actual minus budget for the reported lines.
type IncomeVariance struct {
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	EBIT        decimal.Decimal `json:"ebit"`
	NetIncome   decimal.Decimal `json:"netIncome"`
}

// IncomeVariancePct is variance over budget times 100. A nil field means the budget was zero.
type IncomeVariancePct struct {
	Revenue     *decimal.Decimal `json:"revenue"`
	GrossProfit *decimal.Decimal `json:"grossProfit"`
	EBIT        *decimal.Decimal `json:"ebit"`
	NetIncome   *decimal.Decimal `json:"netIncome"`
}

// IncomeStatement compares a period's actual results with its budgets.
type IncomeStatement struct {
	PeriodID    string            `json:"periodId"`
	PeriodLabel string            `json:"periodLabel"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Actual      IncomeFigures     `json:"actual"`
	Budget      IncomeFigures     `json:"budget"`
	Variance    IncomeVariance    `json:"variance"`
	VariancePct IncomeVariancePct `json:"variancePct"`
}

// BalanceSheetRow is one account line of the balance sheet.
type BalanceSheetRow struct {
	AccountRef    string          `json:"accountRef"`
	AccountID     string          `json:"accountId"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	IsCurrent     bool            `json:"isCurrent"`
	TotalDebits   decimal.Decimal `json:"totalDebits"`
	TotalCredits  decimal.Decimal `json:"totalCredits"`
	SignedBalance decimal.Decimal `json:"signedBalance"`
}

// BalanceSheetReport is the statement of financial position as of a date.
type BalanceSheetReport struct {
	AsOfDate              time.Time         `json:"asOfDate"`
	AssetsCurrent         []BalanceSheetRow `json:"assetsCurrent"`
	AssetsNonCurrent      []BalanceSheetRow `json:"assetsNonCurrent"`
	LiabilitiesCurrent    []BalanceSheetRow `json:"liabilitiesCurrent"`
	LiabilitiesNonCurrent []BalanceSheetRow `json:"liabilitiesNonCurrent"`
	Equity                []BalanceSheetRow `json:"equity"`
	TotalAssets           decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal   `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal   `json:"totalEquity"`
	ValidationStatus      string            `json:"validationStatus"`
}

// CashFlowReport sections a period's cash movements and reconciles them to the cash balance.
type CashFlowReport struct {
	PeriodID         string                         `json:"periodId"`
	PeriodLabel      string                         `json:"periodLabel"`
	OpeningCash      decimal.Decimal                `json:"openingCash"`
	CFO              decimal.Decimal                `json:"cfo"`
	CFI              decimal.Decimal                `json:"cfi"`
	CFF              decimal.Decimal                `json:"cff"`
	Unclassified     decimal.Decimal                `json:"unclassified"` // counter-accounts with cash source NONE
	NetChange        decimal.Decimal                `json:"netChange"`
	EndingCash       decimal.Decimal                `json:"endingCash"`
	BalanceSheetCash decimal.Decimal                `json:"balanceSheetCash"`
	Reconciled       bool                           `json:"reconciled"`
	SectionDetails   map[CashSource]decimal.Decimal `json:"sectionDetails"`
}
