package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/repositories/memory"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SeedTestSuite struct {
	suite.Suite
	ctx      context.Context
	logger   *slog.Logger
	services *portssvc.ServiceContainer
}

func (s *SeedTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.services = services.NewServiceContainer(memory.NewRepositoryProvider(memory.NewStore()), services.Dependencies{})
	s.Require().NoError(seed.Run(s.ctx, s.services, s.logger))
}

func TestSeedTestSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}

func (s *SeedTestSuite) periodByLabel(label string) domain.Period {
	periods, err := s.services.Period.ListPeriods(s.ctx)
	s.Require().NoError(err)
	for _, p := range periods {
		if p.Label == label {
			return p
		}
	}
	s.FailNow("period not seeded", label)
	return domain.Period{}
}

func (s *SeedTestSuite) TestPeriodsFollowCalendar() {
	periods, err := s.services.Period.ListPeriods(s.ctx)
	s.Require().NoError(err)
	s.Len(periods, 12)

	s.Equal(domain.PeriodClosed, s.periodByLabel("January 2025").Status)
	s.Equal(domain.PeriodClosed, s.periodByLabel("June 2025").Status)
	s.Equal(domain.PeriodOpen, s.periodByLabel("July 2025").Status)
	s.Equal(domain.PeriodOpen, s.periodByLabel("December 2025").Status)

	feb := s.periodByLabel("February 2025")
	s.Equal("2025-02-28", feb.EndDate.Format(dto.DateLayout))
	s.True(decimal.NewFromInt(15000).Equal(feb.Budgets.Revenue))
}

func (s *SeedTestSuite) TestSecondRunIsSkipped() {
	before, err := s.services.Account.ListAccounts(s.ctx, 100, 0)
	s.Require().NoError(err)

	s.Require().NoError(seed.Run(s.ctx, s.services, s.logger))

	after, err := s.services.Account.ListAccounts(s.ctx, 100, 0)
	s.Require().NoError(err)
	s.Len(after, len(before))
	s.Len(after, 17)
}

func (s *SeedTestSuite) TestJulyTrialBalanceBalances() {
	july := s.periodByLabel("July 2025")

	tb, err := s.services.Reporting.TrialBalance(s.ctx, july.ID)

	s.Require().NoError(err)
	s.Equal(domain.ReportBalanced, tb.Status)
	// each account nets to one column: debit-side balances 45800+3000+800+15000+3000+4000+400+600,
	// credit-side balances 10000+600+48500+13500
	s.True(decimal.NewFromInt(72600).Equal(tb.TotalDebits), tb.TotalDebits.String())
	s.True(decimal.NewFromInt(72600).Equal(tb.TotalCredits), tb.TotalCredits.String())
}

func (s *SeedTestSuite) TestJulyIncomeStatement() {
	july := s.periodByLabel("July 2025")

	is, err := s.services.Reporting.IncomeStatement(s.ctx, july.ID)

	s.Require().NoError(err)
	s.True(decimal.NewFromInt(13500).Equal(is.Actual.Revenue), is.Actual.Revenue.String())
	s.True(decimal.NewFromInt(8000).Equal(is.Actual.Opex), is.Actual.Opex.String())
	s.True(decimal.NewFromInt(5500).Equal(is.Actual.NetIncome), is.Actual.NetIncome.String())
}

func (s *SeedTestSuite) TestClosedMonthRefusesPostings() {
	accounts, err := s.services.Account.ListAccounts(s.ctx, 100, 0)
	s.Require().NoError(err)
	var cash, capital string
	for _, a := range accounts {
		switch a.AccountID {
		case "1000":
			cash = a.ID
		case "3000":
			capital = a.ID
		}
	}

	_, err = s.services.Journal.PostTransaction(s.ctx, dto.PostTransactionRequest{
		TransactionDate: "2025-03-10",
		Description:     "late entry",
		Entries: []dto.JournalEntryRequest{
			{AccountRef: cash, DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.Zero},
			{AccountRef: capital, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(10)},
		},
	}, seed.SystemUserID)

	s.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (s *SeedTestSuite) TestOldLoanIsInactive() {
	accounts, err := s.services.Account.ListAccounts(s.ctx, 100, 0)
	s.Require().NoError(err)
	for _, a := range accounts {
		if a.AccountID == "2500" {
			s.Equal(domain.AccountInactive, a.Status)
			return
		}
	}
	s.Fail("account 2500 not seeded")
}
