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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	now      time.Time
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.userID = uuid.NewString()
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountClock(func() time.Time { return suite.now }))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func (suite *AccountServiceTestSuite) TestCreateAccount_Defaults() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountID: " 1000 ", Name: "Cash", AccountType: domain.Asset, IsCashAccount: true}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == "1000" && a.PLMapping == domain.PLNone && a.CashSource == domain.CashSourceNone &&
			a.IsCurrent && a.Status == domain.AccountActive && !a.HasTransactions
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(acc.ID)
	suite.Equal(suite.now, acc.CreatedAt)
	suite.Equal(suite.userID, acc.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Validation() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"missing code", dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}},
		{"code too long", dto.CreateAccountRequest{AccountID: "123456789012345678901", Name: "Cash", AccountType: domain.Asset}},
		{"missing name", dto.CreateAccountRequest{AccountID: "1000", AccountType: domain.Asset}},
		{"unknown type", dto.CreateAccountRequest{AccountID: "1000", Name: "Cash", AccountType: "GOLD"}},
		{"unknown mapping", dto.CreateAccountRequest{AccountID: "1000", Name: "Cash", AccountType: domain.Asset, PLMapping: "MISC"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateAccount(context.Background(), tt.req, suite.userID)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{AccountID: "1000", Name: "Cash", AccountType: domain.Asset}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_FrozenFieldsOnceUsed() {
	ctx := context.Background()
	used := &domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, IsCashAccount: true, Status: domain.AccountActive, HasTransactions: true}

	tests := []struct {
		name string
		req  dto.UpdateAccountRequest
	}{
		{"code", dto.UpdateAccountRequest{AccountID: strPtr("1001")}},
		{"type", dto.UpdateAccountRequest{AccountType: func() *domain.AccountType { t := domain.Expense; return &t }()}},
		{"cash flag", dto.UpdateAccountRequest{IsCashAccount: boolPtr(false)}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(used, nil).Once()
			_, err := suite.service.UpdateAccount(ctx, "a1", tt.req, suite.userID)
			suite.ErrorIs(err, apperrors.ErrInvalidState)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_FreeFieldsOnceUsed() {
	ctx := context.Background()
	used := &domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, IsCashAccount: true, Status: domain.AccountActive, HasTransactions: true}
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(used, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Petty cash" && a.AccountID == "1000" && a.HasTransactions
	})).Return(nil).Once()

	// restating the frozen code unchanged is allowed
	updated, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{Name: strPtr("Petty cash"), AccountID: strPtr("1000")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Petty cash", updated.Name)
	suite.Equal(suite.now, updated.LastUpdatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestToggleActive() {
	ctx := context.Background()
	toggledAcc := &domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, Status: domain.AccountInactive, HasTransactions: true}
	suite.mockRepo.On("ToggleAccountStatus", ctx, "a1", suite.now, suite.userID).Return(toggledAcc, nil).Once()

	toggled, err := suite.service.ToggleActive(ctx, "a1", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountInactive, toggled.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestToggleActive_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("ToggleAccountStatus", ctx, "nope", suite.now, suite.userID).
		Return(nil, apperrors.NewNotFoundError("account", "nope")).Once()

	_, err := suite.service.ToggleActive(ctx, "nope", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_FrozenRefusalCarriesState() {
	ctx := context.Background()
	used := &domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, Status: domain.AccountActive, HasTransactions: true}
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(used, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{AccountID: strPtr("1001")}, suite.userID)

	var stateErr *apperrors.StateError
	suite.Require().ErrorAs(err, &stateErr)
	suite.Equal(domain.AccountStateHasTransactions, stateErr.Current)
	suite.Equal(domain.AccountStateUnused, stateErr.Wanted)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RepositoryRefusalIsPassedOn() {
	ctx := context.Background()
	unused := &domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, Status: domain.AccountActive}
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(unused, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.Anything).Return(domain.FrozenFieldsError("a1")).Once()

	_, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{AccountID: strPtr("1001")}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AccountServiceTestSuite) TestListAccounts_Defaults() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, 100, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 0, -3)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
}

// postingAfterRead lets a posting commit between the service's read and its write.
type postingAfterRead struct {
	*memory.Store
	post func()
}

func (r *postingAfterRead) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	acc, err := r.Store.FindAccountByID(ctx, id)
	if r.post != nil {
		r.post()
		r.post = nil
	}
	return acc, err
}

func TestUpdateAccount_PostingBetweenReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	jan := domain.Period{ID: "p1", Label: "2025-01", StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), Status: domain.PeriodOpen}
	require.NoError(t, store.SavePeriod(ctx, jan))
	cash := domain.Account{ID: "a1", AccountID: "1000", Name: "Cash", Type: domain.Asset, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, IsCashAccount: true, Status: domain.AccountActive}
	capital := domain.Account{ID: "a2", AccountID: "3000", Name: "Capital", Type: domain.Equity, PLMapping: domain.PLNone,
		CashSource: domain.CashSourceNone, Status: domain.AccountActive}
	require.NoError(t, store.SaveAccount(ctx, cash))
	require.NoError(t, store.SaveAccount(ctx, capital))

	repo := &postingAfterRead{Store: store, post: func() {
		require.NoError(t, store.SaveJournalTransaction(ctx, domain.JournalTransaction{
			ID: "t1", PeriodID: jan.ID, TransactionDate: jan.StartDate, Description: "capital",
			Entries: []domain.JournalEntry{
				{ID: "e1", TransactionID: "t1", AccountRef: cash.ID, DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.Zero},
				{ID: "e2", TransactionID: "t1", AccountRef: capital.ID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(10)},
			},
		}))
	}}
	svc := services.NewAccountService(repo)

	liability := domain.Liability
	_, err := svc.UpdateAccount(ctx, cash.ID, dto.UpdateAccountRequest{AccountType: &liability, IsCashAccount: boolPtr(false)}, "u1")

	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	stored, err := store.FindAccountByID(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Asset, stored.Type)
	assert.True(t, stored.IsCashAccount)
	assert.True(t, stored.HasTransactions)
}
