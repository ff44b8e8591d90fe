package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store

	cash    domain.Account
	capital domain.Account
	rent    domain.Account
	period  domain.Period
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewStore()

	s.cash = domain.Account{ID: "acc-cash", AccountID: "1000", Name: "Cash", Type: domain.Asset,
		CashSource: domain.CashSourceNone, IsCashAccount: true, IsCurrent: true, Status: domain.AccountActive}
	s.capital = domain.Account{ID: "acc-cap", AccountID: "3000", Name: "Owner's Capital", Type: domain.Equity,
		CashSource: domain.CashSourceCFF, Status: domain.AccountActive}
	s.rent = domain.Account{ID: "acc-rent", AccountID: "6000", Name: "Rent", Type: domain.Expense,
		PLMapping: domain.PLOpex, CashSource: domain.CashSourceCFO, Status: domain.AccountActive}
	for _, a := range []domain.Account{s.cash, s.capital, s.rent} {
		s.Require().NoError(s.store.SaveAccount(s.ctx, a))
	}

	s.period = domain.Period{ID: "per-jan", Label: "2025-01", StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 31), Status: domain.PeriodOpen}
	s.Require().NoError(s.store.SavePeriod(s.ctx, s.period))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) post(id string, on time.Time, entries ...domain.JournalEntry) error {
	for i := range entries {
		entries[i].TransactionID = id
		if entries[i].ID == "" {
			entries[i].ID = id + "-" + string(rune('a'+i))
		}
	}
	return s.store.SaveJournalTransaction(s.ctx, domain.JournalTransaction{
		ID: id, PeriodID: s.period.ID, TransactionDate: on, Description: "test", Entries: entries,
	})
}

func dr(ref, amount string) domain.JournalEntry {
	return domain.JournalEntry{AccountRef: ref, DebitAmount: decimal.RequireFromString(amount), CreditAmount: decimal.Zero}
}

func cr(ref, amount string) domain.JournalEntry {
	return domain.JournalEntry{AccountRef: ref, DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString(amount)}
}

func (s *StoreTestSuite) TestSaveAccount_Duplicates() {
	dupCode := domain.Account{ID: "x1", AccountID: "1000", Name: "Other"}
	s.ErrorIs(s.store.SaveAccount(s.ctx, dupCode), apperrors.ErrDuplicate)

	dupName := domain.Account{ID: "x2", AccountID: "1001", Name: "Cash"}
	s.ErrorIs(s.store.SaveAccount(s.ctx, dupName), apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestSavePeriod_RejectsOverlapAndDuplicateLabel() {
	overlapping := domain.Period{ID: "p2", Label: "late-jan", StartDate: date(2025, 1, 31), EndDate: date(2025, 2, 28)}
	s.ErrorIs(s.store.SavePeriod(s.ctx, overlapping), apperrors.ErrPeriodOverlap)

	sameLabel := domain.Period{ID: "p3", Label: "2025-01", StartDate: date(2025, 3, 1), EndDate: date(2025, 3, 31)}
	s.ErrorIs(s.store.SavePeriod(s.ctx, sameLabel), apperrors.ErrDuplicate)

	adjacent := domain.Period{ID: "p4", Label: "2025-02", StartDate: date(2025, 2, 1), EndDate: date(2025, 2, 28)}
	s.NoError(s.store.SavePeriod(s.ctx, adjacent))
}

func (s *StoreTestSuite) TestFindPeriodForDate() {
	p, err := s.store.FindPeriodForDate(s.ctx, date(2025, 1, 31))
	s.Require().NoError(err)
	s.Equal(s.period.ID, p.ID)

	_, err = s.store.FindPeriodForDate(s.ctx, date(2025, 2, 1))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveJournalTransaction_FlagsAccountsAndKeepsFlag() {
	s.Require().NoError(s.post("t1", date(2025, 1, 2), dr(s.cash.ID, "50000"), cr(s.capital.ID, "50000")))
	s.Require().NoError(s.post("t2", date(2025, 1, 3), dr(s.cash.ID, "10"), cr(s.capital.ID, "10")))

	acc, err := s.store.FindAccountByID(s.ctx, s.cash.ID)
	s.Require().NoError(err)
	s.True(acc.HasTransactions)

	rent, err := s.store.FindAccountByID(s.ctx, s.rent.ID)
	s.Require().NoError(err)
	s.False(rent.HasTransactions)

	// a plain update carrying a stale copy must not clear the flag
	stale := s.cash
	stale.Description = "main till"
	s.Require().NoError(s.store.UpdateAccount(s.ctx, stale))
	acc, err = s.store.FindAccountByID(s.ctx, s.cash.ID)
	s.Require().NoError(err)
	s.True(acc.HasTransactions)
}

func (s *StoreTestSuite) TestUpdateAccount_RefusesFrozenFieldsOnceUsed() {
	// snapshot taken before the posting lands
	snapshot := s.cash
	s.Require().NoError(s.post("t1", date(2025, 1, 2), dr(s.cash.ID, "5"), cr(s.capital.ID, "5")))

	retyped := snapshot
	retyped.Type = domain.Liability
	retyped.IsCashAccount = false
	err := s.store.UpdateAccount(s.ctx, retyped)

	var stateErr *apperrors.StateError
	s.Require().ErrorAs(err, &stateErr)
	s.Equal(domain.AccountStateHasTransactions, stateErr.Current)
	acc, err := s.store.FindAccountByID(s.ctx, s.cash.ID)
	s.Require().NoError(err)
	s.Equal(domain.Asset, acc.Type)
	s.True(acc.IsCashAccount)

	renamed := snapshot
	renamed.Name = "Main till"
	s.NoError(s.store.UpdateAccount(s.ctx, renamed))
}

func (s *StoreTestSuite) TestToggleAccountStatus_KeepsOtherColumns() {
	renamed := s.rent
	renamed.Name = "Office rent"
	s.Require().NoError(s.store.UpdateAccount(s.ctx, renamed))

	at := date(2025, 2, 1)
	toggled, err := s.store.ToggleAccountStatus(s.ctx, s.rent.ID, at, "u9")
	s.Require().NoError(err)
	s.Equal(domain.AccountInactive, toggled.Status)
	s.Equal("Office rent", toggled.Name)
	s.Equal("u9", toggled.LastUpdatedBy)

	back, err := s.store.ToggleAccountStatus(s.ctx, s.rent.ID, at, "u9")
	s.Require().NoError(err)
	s.Equal(domain.AccountActive, back.Status)

	_, err = s.store.ToggleAccountStatus(s.ctx, "missing", at, "u9")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestListActiveAccounts() {
	_, err := s.store.ToggleAccountStatus(s.ctx, s.capital.ID, date(2025, 2, 1), "u1")
	s.Require().NoError(err)

	active, err := s.store.ListActiveAccounts(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(active, 2)
	s.Equal("1000", active[0].AccountID)
	s.Equal("6000", active[1].AccountID)
}

func (s *StoreTestSuite) TestSaveJournalTransaction_RechecksUnderLock() {
	closing := s.period
	closing.Status = domain.PeriodClosing
	_, err := s.store.TransitionPeriod(s.ctx, s.period.ID, func(p *domain.Period, _ domain.Totals) error {
		*p = closing
		return nil
	})
	s.Require().NoError(err)

	err = s.post("t1", date(2025, 1, 2), dr(s.cash.ID, "1"), cr(s.capital.ID, "1"))
	s.ErrorIs(err, apperrors.ErrPeriodClosed)

	_, err = s.store.FindTransactionByID(s.ctx, "t1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveJournalTransaction_InactiveAccount() {
	inactive := s.rent
	inactive.Status = domain.AccountInactive
	s.Require().NoError(s.store.UpdateAccount(s.ctx, inactive))

	err := s.post("t1", date(2025, 1, 2), dr(s.rent.ID, "1"), cr(s.cash.ID, "1"))
	s.ErrorIs(err, apperrors.ErrInactiveOrUnknownAccount)

	err = s.post("t2", date(2025, 1, 2), dr("missing", "1"), cr(s.cash.ID, "1"))
	s.ErrorIs(err, apperrors.ErrInactiveOrUnknownAccount)
}

func (s *StoreTestSuite) TestTransitionPeriod_SeesTotalsAndDiscardsOnFailure() {
	s.Require().NoError(s.post("t1", date(2025, 1, 2), dr(s.cash.ID, "40"), cr(s.capital.ID, "40")))

	var seen domain.Totals
	_, err := s.store.TransitionPeriod(s.ctx, s.period.ID, func(p *domain.Period, totals domain.Totals) error {
		seen = totals
		p.Status = domain.PeriodClosing
		return apperrors.ErrUnbalanced
	})
	s.ErrorIs(err, apperrors.ErrUnbalanced)
	s.True(seen.Debits.Equal(decimal.NewFromInt(40)))
	s.True(seen.Credits.Equal(decimal.NewFromInt(40)))

	p, err := s.store.FindPeriodByID(s.ctx, s.period.ID)
	s.Require().NoError(err)
	s.Equal(domain.PeriodOpen, p.Status)
}

func (s *StoreTestSuite) TestListTransactions_Paginates() {
	s.Require().NoError(s.post("01A", date(2025, 1, 2), dr(s.cash.ID, "1"), cr(s.capital.ID, "1")))
	s.Require().NoError(s.post("01B", date(2025, 1, 2), dr(s.cash.ID, "2"), cr(s.capital.ID, "2")))
	s.Require().NoError(s.post("01C", date(2025, 1, 5), dr(s.cash.ID, "3"), cr(s.capital.ID, "3")))

	page, next, err := s.store.ListTransactions(s.ctx, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("01C", page[0].ID)
	s.Equal("01B", page[1].ID)
	s.Require().NotNil(next)
	s.Equal("1000", page[0].Entries[0].AccountCode)

	page, next, err = s.store.ListTransactions(s.ctx, 2, next)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("01A", page[0].ID)
	s.Nil(next)

	bad := "%%%"
	_, _, err = s.store.ListTransactions(s.ctx, 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StoreTestSuite) TestReportingQueries() {
	s.Require().NoError(s.post("t1", date(2025, 1, 2), dr(s.cash.ID, "50000"), cr(s.capital.ID, "50000")))
	s.Require().NoError(s.post("t2", date(2025, 1, 10), dr(s.rent.ID, "1200"), cr(s.cash.ID, "1200")))

	from := date(2025, 1, 5)
	totals, err := s.store.SumAccountTotals(s.ctx, &from, date(2025, 1, 31))
	s.Require().NoError(err)
	s.Require().Len(totals, 2, "accounts without entries in range are omitted")
	s.Equal("1000", totals[0].AccountID)
	s.True(totals[0].Credits.Equal(decimal.NewFromInt(1200)))

	openings, err := s.store.SumBalancesBefore(s.ctx, date(2025, 1, 10), []string{s.cash.ID})
	s.Require().NoError(err)
	s.True(openings[s.cash.ID].Equal(decimal.NewFromInt(50000)))
	_, hasCapital := openings[s.capital.ID]
	s.False(hasCapital)

	cashBefore, err := s.store.SumCashBefore(s.ctx, date(2025, 2, 1))
	s.Require().NoError(err)
	s.True(cashBefore.Equal(decimal.NewFromInt(48800)))

	lines, err := s.store.ListCashLines(s.ctx, date(2025, 1, 1), date(2025, 1, 31))
	s.Require().NoError(err)
	s.Len(lines, 4)

	ledger, err := s.store.ListLedgerLines(s.ctx, date(2025, 1, 1), date(2025, 1, 31), nil)
	s.Require().NoError(err)
	s.Len(ledger, 4)
}

func TestListRecentPeriods(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for i, m := range []time.Month{time.January, time.February, time.March} {
		p := domain.Period{
			ID:        string(rune('a' + i)),
			Label:     m.String(),
			StartDate: date(2025, m, 1),
			EndDate:   date(2025, m, 28),
		}
		require.NoError(t, store.SavePeriod(ctx, p))
	}

	recent, err := store.ListRecentPeriods(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "March", recent[0].Label)
	assert.Equal(t, "February", recent[1].Label)
}

func TestEncodedCursorMatchesStoreOrder(t *testing.T) {
	token := pagination.EncodeToken(date(2025, 1, 2), "01B")
	cursorDate, cursorID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, pagination.After(date(2025, 1, 2), "01A", cursorDate, cursorID))
}
