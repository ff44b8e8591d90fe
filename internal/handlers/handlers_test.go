package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/handlers"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/platform/config"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "ledger-test"
)

// --- Mock RevenueForecaster ---
type MockForecaster struct {
	mock.Mock
}

func (m *MockForecaster) ForecastRevenue(ctx context.Context, history []decimal.Decimal) (*domain.RevenueForecast, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueForecast), args.Error(1)
}

var _ portssvc.RevenueForecaster = (*MockForecaster)(nil)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	services   *portssvc.ServiceContainer
	forecaster *MockForecaster
	userID     string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.userID = uuid.NewString()
	suite.forecaster = new(MockForecaster)
	suite.services = services.NewServiceContainer(
		memory.NewRepositoryProvider(memory.NewStore()),
		services.Dependencies{Forecaster: suite.forecaster},
	)
	suite.router = suite.newRouter(suite.services)
}

func (suite *LedgerHandlerTestSuite) newRouter(container *portssvc.ServiceContainer) *gin.Engine {
	r := gin.New()
	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	suite.Require().NoError(handlers.RegisterRoutes(r, cfg, container, nil))
	return r
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

// generateTestToken creates a signed JWT for userID.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) do(router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) request(method, target string, body any) *httptest.ResponseRecorder {
	return suite.do(suite.router, method, target, body)
}

func (suite *LedgerHandlerTestSuite) decode(w *httptest.ResponseRecorder, into any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}

func (suite *LedgerHandlerTestSuite) createPeriod(label, start, end string) dto.PeriodResponse {
	w := suite.request(http.MethodPost, "/api/v1/periods", gin.H{"label": label, "startDate": start, "endDate": end, "revenueBudget": "1000"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var p dto.PeriodResponse
	suite.decode(w, &p)
	return p
}

func (suite *LedgerHandlerTestSuite) createAccount(code, name string, typ domain.AccountType, extra gin.H) dto.AccountResponse {
	body := gin.H{"accountId": code, "name": name, "accountType": typ}
	for k, v := range extra {
		body[k] = v
	}
	w := suite.request(http.MethodPost, "/api/v1/accounts", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var a dto.AccountResponse
	suite.decode(w, &a)
	return a
}

func entry(ref string, debit, credit string) gin.H {
	return gin.H{"accountRef": ref, "debitAmount": debit, "creditAmount": credit}
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestWrongIssuerIsUnauthorized() {
	claims := jwt.RegisteredClaims{Issuer: "someone-else", Subject: suite.userID, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestHealthIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_RecordsCaller() {
	acc := suite.createAccount("1000", "Cash", domain.Asset, gin.H{"isCashAccount": true, "cashSource": "CFO"})

	suite.Equal("1000", acc.AccountID)
	suite.Equal(domain.AccountActive, acc.Status)
	suite.True(acc.IsCurrent, "isCurrent defaults to true")
	suite.Equal(suite.userID, acc.CreatedBy)
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_DuplicateCodeConflicts() {
	suite.createAccount("1000", "Cash", domain.Asset, nil)

	w := suite.request(http.MethodPost, "/api/v1/accounts", gin.H{"accountId": "1000", "name": "Petty cash", "accountType": "ASSET"})

	suite.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_UnknownTypeIsBadRequest() {
	w := suite.request(http.MethodPost, "/api/v1/accounts", gin.H{"accountId": "9000", "name": "Odd", "accountType": "CONTRA"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetAccount_NotFound() {
	w := suite.request(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreatePeriod_NegativeBudgetIsBadRequest() {
	w := suite.request(http.MethodPost, "/api/v1/periods", gin.H{
		"label": "2025-01", "startDate": "2025-01-01", "endDate": "2025-01-31", "opexBudget": "-1",
	})
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestCreatePeriod_InvertedRangeIsBadRequest() {
	w := suite.request(http.MethodPost, "/api/v1/periods", gin.H{
		"label": "backwards", "startDate": "2025-02-01", "endDate": "2025-01-01",
	})
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestCreatePeriod_OverlapConflicts() {
	suite.createPeriod("mid-July", "2025-07-15", "2025-08-15")

	w := suite.request(http.MethodPost, "/api/v1/periods", gin.H{
		"label": "July 2025", "startDate": "2025-07-01", "endDate": "2025-07-31",
	})

	suite.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestLockOpenPeriod_ReportsStates() {
	p := suite.createPeriod("2025-01", "2025-01-01", "2025-01-31")

	w := suite.request(http.MethodPut, "/api/v1/periods/"+p.ID+"/lock", nil)

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]string
	suite.decode(w, &body)
	suite.Equal("OPEN", body["currentState"])
	suite.Equal("CLOSING", body["requiredState"])
}

func (suite *LedgerHandlerTestSuite) TestPeriodLifecycle() {
	p := suite.createPeriod("2025-01", "2025-01-01", "2025-01-31")

	w := suite.request(http.MethodPut, "/api/v1/periods/"+p.ID+"/start-closing", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPut, "/api/v1/periods/"+p.ID+"/lock", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var closed dto.PeriodResponse
	suite.decode(w, &closed)
	suite.Equal(domain.PeriodClosed, closed.Status)
	suite.NotNil(closed.ClosedAt)
	suite.NotNil(closed.TimeToClose)
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_Statuses() {
	period := suite.createPeriod("2025-03", "2025-03-01", "2025-03-31")
	cash := suite.createAccount("1000", "Cash", domain.Asset, gin.H{"isCashAccount": true})
	capital := suite.createAccount("3000", "Owner's Capital", domain.Equity, gin.H{"isCurrent": false})

	tests := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"unbalanced", gin.H{"transactionDate": "2025-03-05", "description": "typo",
			"entries": []gin.H{entry(cash.ID, "100", "0"), entry(capital.ID, "0", "90")}}, http.StatusUnprocessableEntity},
		{"no period", gin.H{"transactionDate": "2024-12-31", "description": "too early",
			"entries": []gin.H{entry(cash.ID, "100", "0"), entry(capital.ID, "0", "100")}}, http.StatusUnprocessableEntity},
		{"unknown account", gin.H{"transactionDate": "2025-03-05", "description": "ghost",
			"entries": []gin.H{entry(cash.ID, "100", "0"), entry(uuid.NewString(), "0", "100")}}, http.StatusUnprocessableEntity},
		{"negative amount", gin.H{"transactionDate": "2025-03-05", "description": "negative",
			"entries": []gin.H{entry(cash.ID, "-100", "0"), entry(capital.ID, "0", "-100")}}, http.StatusBadRequest},
		{"bad date", gin.H{"transactionDate": "05/03/2025", "description": "format",
			"entries": []gin.H{entry(cash.ID, "100", "0"), entry(capital.ID, "0", "100")}}, http.StatusBadRequest},
		{"balanced", gin.H{"transactionDate": "2025-03-05", "description": "capital",
			"entries": []gin.H{entry(cash.ID, "100", "0"), entry(capital.ID, "0", "100")}}, http.StatusCreated},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.request(http.MethodPost, "/api/v1/journal-transactions", tt.body)
			suite.Equal(tt.status, w.Code, w.Body.String())
		})
	}

	w := suite.request(http.MethodGet, "/api/v1/reports/trial-balance/"+period.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var tb dto.TrialBalanceResponse
	suite.decode(w, &tb)
	suite.Equal(domain.ReportBalanced, tb.Status)
	suite.True(decimal.NewFromInt(100).Equal(tb.Totals.Debit), tb.Totals.Debit.String())
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_ClosingPeriodConflicts() {
	period := suite.createPeriod("2025-03", "2025-03-01", "2025-03-31")
	cash := suite.createAccount("1000", "Cash", domain.Asset, nil)
	capital := suite.createAccount("3000", "Owner's Capital", domain.Equity, nil)
	w := suite.request(http.MethodPut, "/api/v1/periods/"+period.ID+"/start-closing", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/journal-transactions", gin.H{
		"transactionDate": "2025-03-10", "description": "late",
		"entries": []gin.H{entry(cash.ID, "5", "0"), entry(capital.ID, "0", "5")},
	})

	suite.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_Pages() {
	suite.createPeriod("2025-03", "2025-03-01", "2025-03-31")
	cash := suite.createAccount("1000", "Cash", domain.Asset, nil)
	capital := suite.createAccount("3000", "Owner's Capital", domain.Equity, nil)
	for _, day := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		w := suite.request(http.MethodPost, "/api/v1/journal-transactions", gin.H{
			"transactionDate": day, "description": "deposit " + day,
			"entries": []gin.H{entry(cash.ID, "1", "0"), entry(capital.ID, "0", "1")},
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := suite.request(http.MethodGet, "/api/v1/journal-transactions?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page dto.ListTransactionsResponse
	suite.decode(w, &page)
	suite.Len(page.Transactions, 2)
	suite.Equal("2025-03-03", page.Transactions[0].TransactionDate)
	suite.Require().NotNil(page.NextToken)

	w = suite.request(http.MethodGet, "/api/v1/journal-transactions?limit=2&nextToken="+url.QueryEscape(*page.NextToken), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var rest dto.ListTransactionsResponse
	suite.decode(w, &rest)
	suite.Len(rest.Transactions, 1)
	suite.Nil(rest.NextToken)
}

func (suite *LedgerHandlerTestSuite) TestGeneralLedger_InvertedRangeIsBadRequest() {
	w := suite.request(http.MethodGet, "/api/v1/reports/general-ledger?fromDate=2025-03-31&toDate=2025-03-01", nil)
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestBalanceSheet_BadDate() {
	w := suite.request(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestForecast_Success() {
	suite.forecaster.On("ForecastRevenue", mock.Anything, mock.MatchedBy(func(h []decimal.Decimal) bool {
		return len(h) == 2 && h[0].Equal(decimal.NewFromInt(100)) && h[1].Equal(decimal.NewFromInt(120))
	})).Return(&domain.RevenueForecast{Predicted: decimal.NewFromInt(140)}, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/forecasts/revenue", gin.H{"revenueTwoQuartersAgo": "100", "revenueLastQuarter": "120"})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.RevenueForecastResponse
	suite.decode(w, &res)
	suite.True(decimal.NewFromInt(140).Equal(res.PredictedNextQuarterRevenue))
	suite.forecaster.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestForecast_FailureIsHidden() {
	suite.forecaster.On("ForecastRevenue", mock.Anything, mock.Anything).Return(nil, errors.New("model endpoint timed out")).Once()

	w := suite.request(http.MethodPost, "/api/v1/forecasts/revenue", gin.H{"revenueTwoQuartersAgo": "100", "revenueLastQuarter": "120"})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "timed out")
}

func (suite *LedgerHandlerTestSuite) TestForecast_NotConfigured() {
	container := services.NewServiceContainer(memory.NewRepositoryProvider(memory.NewStore()), services.Dependencies{})
	router := suite.newRouter(container)

	w := suite.do(router, http.MethodPost, "/api/v1/forecasts/revenue", gin.H{"revenueTwoQuartersAgo": "100", "revenueLastQuarter": "120"})

	suite.Equal(http.StatusNotImplemented, w.Code)
}
