package dto

import (
	"strings"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	PeriodID     string                   `json:"periodId"`
	PeriodLabel  string                   `json:"periodLabel"`
	PeriodStatus domain.PeriodStatus      `json:"periodStatus"`
	Rows         []domain.TrialBalanceRow `json:"rows"`
	Totals       struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Status string `json:"status"`
}

// ToTrialBalanceResponse converts the domain report into its response DTO
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	res := TrialBalanceResponse{
		PeriodID:     r.PeriodID,
		PeriodLabel:  r.PeriodLabel,
		PeriodStatus: r.PeriodStatus,
		Rows:         r.Rows,
		Status:       r.Status,
	}
	if res.Rows == nil {
		res.Rows = []domain.TrialBalanceRow{}
	}
	res.Totals.Debit = r.TotalDebits
	res.Totals.Credit = r.TotalCredits
	return res
}

// GeneralLedgerParams defines the query parameters of the general ledger report
type GeneralLedgerParams struct {
	FromDate   string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate     string `form:"toDate" binding:"required,datetime=2006-01-02"`
	AccountIDs string `form:"accountIDs"` // comma separated account surrogate keys
}

// AccountRefs splits the comma separated account list, dropping blanks.
func (p GeneralLedgerParams) AccountRefs() []string {
	if strings.TrimSpace(p.AccountIDs) == "" {
		return nil
	}
	parts := strings.Split(p.AccountIDs, ",")
	refs := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			refs = append(refs, s)
		}
	}
	return refs
}

// GeneralLedgerRowResponse is one line of the general ledger
type GeneralLedgerRowResponse struct {
	EntryID         string          `json:"entryId"`
	TransactionID   string          `json:"transactionId"`
	TransactionDate string          `json:"transactionDate"`
	Account         string          `json:"account"`
	AccountName     string          `json:"accountName"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Signed          decimal.Decimal `json:"signed"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	Description     string          `json:"description"`
}

// GeneralLedgerResponse represents the general ledger report response
type GeneralLedgerResponse struct {
	FromDate   string                     `json:"fromDate"`
	ToDate     string                     `json:"toDate"`
	AccountIDs []string                   `json:"accountIds"`
	Rows       []GeneralLedgerRowResponse `json:"rows"`
}

// ToGeneralLedgerResponse converts the domain report into its response DTO
func ToGeneralLedgerResponse(r *domain.GeneralLedgerReport) GeneralLedgerResponse {
	rows := make([]GeneralLedgerRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = GeneralLedgerRowResponse{
			EntryID:         row.EntryID,
			TransactionID:   row.TransactionID,
			TransactionDate: row.TransactionDate.Format(DateLayout),
			Account:         row.AccountID,
			AccountName:     row.AccountName,
			Debit:           row.DebitAmount,
			Credit:          row.CreditAmount,
			Signed:          row.SignedAmount,
			RunningBalance:  row.RunningBalance,
			Description:     row.Description,
		}
	}
	accountIDs := r.AccountIDs
	if accountIDs == nil {
		accountIDs = []string{}
	}
	return GeneralLedgerResponse{
		FromDate:   r.FromDate.Format(DateLayout),
		ToDate:     r.ToDate.Format(DateLayout),
		AccountIDs: accountIDs,
		Rows:       rows,
	}
}

// IncomeStatementResponse represents the income statement with budget variance
type IncomeStatementResponse struct {
	PeriodID    string                   `json:"periodId"`
	PeriodLabel string                   `json:"periodLabel"`
	StartDate   string                   `json:"startDate"`
	EndDate     string                   `json:"endDate"`
	Actual      domain.IncomeFigures     `json:"actual"`
	Budget      domain.IncomeFigures     `json:"budget"`
	Variance    domain.IncomeVariance    `json:"variance"`
	VariancePct domain.IncomeVariancePct `json:"variancePct"`
}

// ToIncomeStatementResponse converts the domain report into its response DTO
func ToIncomeStatementResponse(r *domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		PeriodID:    r.PeriodID,
		PeriodLabel: r.PeriodLabel,
		StartDate:   r.StartDate.Format(DateLayout),
		EndDate:     r.EndDate.Format(DateLayout),
		Actual:      r.Actual,
		Budget:      r.Budget,
		Variance:    r.Variance,
		VariancePct: r.VariancePct,
	}
}

// BalanceSheetParams defines the query parameters of the balance sheet report
type BalanceSheetParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf                  string                   `json:"asOf"`
	AssetsCurrent         []domain.BalanceSheetRow `json:"assetsCurrent"`
	AssetsNonCurrent      []domain.BalanceSheetRow `json:"assetsNonCurrent"`
	LiabilitiesCurrent    []domain.BalanceSheetRow `json:"liabilitiesCurrent"`
	LiabilitiesNonCurrent []domain.BalanceSheetRow `json:"liabilitiesNonCurrent"`
	Equity                []domain.BalanceSheetRow `json:"equity"`
	Summary               struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	ValidationStatus string `json:"validationStatus"`
}

// ToBalanceSheetResponse converts the domain report into its response DTO
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	res := BalanceSheetResponse{
		AsOf:                  r.AsOfDate.Format(DateLayout),
		AssetsCurrent:         r.AssetsCurrent,
		AssetsNonCurrent:      r.AssetsNonCurrent,
		LiabilitiesCurrent:    r.LiabilitiesCurrent,
		LiabilitiesNonCurrent: r.LiabilitiesNonCurrent,
		Equity:                r.Equity,
		ValidationStatus:      r.ValidationStatus,
	}
	res.Summary.TotalAssets = r.TotalAssets
	res.Summary.TotalLiabilities = r.TotalLiabilities
	res.Summary.TotalEquity = r.TotalEquity
	return res
}

// CashFlowResponse represents the cash flow statement and its reconciliation
type CashFlowResponse struct {
	PeriodID         string                     `json:"periodId"`
	PeriodLabel      string                     `json:"periodLabel"`
	OpeningCash      decimal.Decimal            `json:"openingCash"`
	CFO              decimal.Decimal            `json:"cfo"`
	CFI              decimal.Decimal            `json:"cfi"`
	CFF              decimal.Decimal            `json:"cff"`
	Unclassified     decimal.Decimal            `json:"unclassified"`
	NetChange        decimal.Decimal            `json:"netChange"`
	EndingCash       decimal.Decimal            `json:"endingCash"`
	BalanceSheetCash decimal.Decimal            `json:"balanceSheetCash"`
	Reconciled       bool                       `json:"reconciled"`
	SectionDetails   map[string]decimal.Decimal `json:"sectionDetails"`
}

// ToCashFlowResponse converts the domain report into its response DTO
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	details := make(map[string]decimal.Decimal, len(r.SectionDetails))
	for k, v := range r.SectionDetails {
		details[string(k)] = v
	}
	return CashFlowResponse{
		PeriodID:         r.PeriodID,
		PeriodLabel:      r.PeriodLabel,
		OpeningCash:      r.OpeningCash,
		CFO:              r.CFO,
		CFI:              r.CFI,
		CFF:              r.CFF,
		Unclassified:     r.Unclassified,
		NetChange:        r.NetChange,
		EndingCash:       r.EndingCash,
		BalanceSheetCash: r.BalanceSheetCash,
		Reconciled:       r.Reconciled,
		SectionDetails:   details,
	}
}
