package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *portssvc.ServiceContainer
	period    *domain.Period
	accounts  map[string]*domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.container = services.NewServiceContainer(memory.NewRepositoryProvider(memory.NewStore()), services.Dependencies{})
	suite.accounts = map[string]*domain.Account{}

	for _, req := range []dto.CreateAccountRequest{
		{AccountID: "1000", Name: "Cash", AccountType: domain.Asset, IsCashAccount: true},
		{AccountID: "1500", Name: "Equipment", AccountType: domain.Asset, CashSource: domain.CashSourceCFI, IsCurrent: boolPtr(false)},
		{AccountID: "3000", Name: "Owner's Capital", AccountType: domain.Equity, CashSource: domain.CashSourceCFF},
		{AccountID: "4000", Name: "Sales", AccountType: domain.Revenue, PLMapping: domain.PLRevenue, CashSource: domain.CashSourceCFO},
		{AccountID: "6000", Name: "Rent", AccountType: domain.Expense, PLMapping: domain.PLOpex, CashSource: domain.CashSourceCFO},
	} {
		acc, err := suite.container.Account.CreateAccount(suite.ctx, req, "u1")
		suite.Require().NoError(err)
		suite.accounts[req.AccountID] = acc
	}

	budget := decimal.NewFromInt(4000)
	p, err := suite.container.Period.CreatePeriod(suite.ctx, dto.CreatePeriodRequest{
		Label: "2025-01", StartDate: "2025-01-01", EndDate: "2025-01-31", RevenueBudget: &budget,
	}, "u1")
	suite.Require().NoError(err)
	suite.period = p
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) post(date, debitCode, creditCode, amount string) {
	amt := decimal.RequireFromString(amount)
	_, err := suite.container.Journal.PostTransaction(suite.ctx, dto.PostTransactionRequest{
		TransactionDate: date,
		Description:     debitCode + " / " + creditCode,
		Entries: []dto.JournalEntryRequest{
			{AccountRef: suite.accounts[debitCode].ID, DebitAmount: amt, CreditAmount: decimal.Zero},
			{AccountRef: suite.accounts[creditCode].ID, DebitAmount: decimal.Zero, CreditAmount: amt},
		},
	}, "u1")
	suite.Require().NoError(err)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_CapitalContributionReconciles() {
	suite.post("2025-01-02", "1000", "3000", "50000")

	report, err := suite.container.Reporting.CashFlow(suite.ctx, suite.period.ID)

	suite.Require().NoError(err)
	suite.True(report.OpeningCash.IsZero())
	suite.True(report.CFF.Equal(decimal.NewFromInt(50000)))
	suite.True(report.CFO.IsZero())
	suite.True(report.CFI.IsZero())
	suite.True(report.NetChange.Equal(decimal.NewFromInt(50000)))
	suite.True(report.EndingCash.Equal(decimal.NewFromInt(50000)))
	suite.True(report.BalanceSheetCash.Equal(decimal.NewFromInt(50000)))
	suite.True(report.Reconciled)
}

func (suite *ReportingServiceTestSuite) TestReportsOverMixedActivity() {
	suite.post("2025-01-02", "1000", "3000", "50000")
	suite.post("2025-01-05", "1500", "1000", "20000")
	suite.post("2025-01-10", "1000", "4000", "5000")
	suite.post("2025-01-20", "6000", "1000", "1200")

	tb, err := suite.container.Reporting.TrialBalance(suite.ctx, suite.period.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.ReportBalanced, tb.Status)
	suite.Len(tb.Rows, 5)

	is, err := suite.container.Reporting.IncomeStatement(suite.ctx, suite.period.ID)
	suite.Require().NoError(err)
	suite.True(is.Actual.NetIncome.Equal(decimal.NewFromInt(3800)))
	suite.Require().NotNil(is.VariancePct.Revenue)
	suite.True(is.VariancePct.Revenue.Equal(decimal.NewFromInt(25)))

	cf, err := suite.container.Reporting.CashFlow(suite.ctx, suite.period.ID)
	suite.Require().NoError(err)
	suite.True(cf.CFO.Equal(decimal.NewFromInt(3800)))
	suite.True(cf.CFI.Equal(decimal.NewFromInt(-20000)))
	suite.True(cf.CFF.Equal(decimal.NewFromInt(50000)))
	suite.True(cf.EndingCash.Equal(decimal.NewFromInt(33800)))
	suite.True(cf.Reconciled)

	gl, err := suite.container.Reporting.GeneralLedger(suite.ctx,
		time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		[]string{suite.accounts["1000"].ID})
	suite.Require().NoError(err)
	suite.Equal([]string{"1000"}, gl.AccountIDs)
	suite.Require().Len(gl.Rows, 2)
	suite.True(gl.Rows[0].RunningBalance.Equal(decimal.NewFromInt(35000)), "opening 30000 plus the 5000 sale")
	suite.True(gl.Rows[1].RunningBalance.Equal(decimal.NewFromInt(33800)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_AsOfCutoff() {
	suite.post("2025-01-02", "1000", "3000", "50000")
	suite.post("2025-01-05", "1500", "1000", "20000")

	bs, err := suite.container.Reporting.BalanceSheet(suite.ctx, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(domain.ReportBalanced, bs.ValidationStatus)
	suite.True(bs.TotalAssets.Equal(decimal.NewFromInt(50000)))
	suite.Len(bs.AssetsCurrent, 1)
	suite.Len(bs.AssetsNonCurrent, 1)

	early, err := suite.container.Reporting.BalanceSheet(suite.ctx, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.True(early.TotalAssets.Equal(decimal.NewFromInt(50000)))
	suite.Empty(early.AssetsNonCurrent)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_InvalidRange() {
	_, err := suite.container.Reporting.GeneralLedger(suite.ctx,
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	suite.ErrorIs(err, apperrors.ErrInvalidRange)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_UnfilteredHeaderListsActiveAccounts() {
	suite.post("2025-01-02", "1000", "3000", "50000")
	_, err := suite.container.Account.ToggleActive(suite.ctx, suite.accounts["1500"].ID, "u1")
	suite.Require().NoError(err)

	gl, err := suite.container.Reporting.GeneralLedger(suite.ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), nil)

	suite.Require().NoError(err)
	suite.Equal([]string{"1000", "3000", "4000", "6000"}, gl.AccountIDs)
	suite.Len(gl.Rows, 2)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_UnknownPeriod() {
	_, err := suite.container.Reporting.TrialBalance(suite.ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}
