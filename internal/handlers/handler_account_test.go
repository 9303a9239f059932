package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/handlers"
	"github.com/SscSPs/rokkam_money_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockLedgerService) GetAccountByRole(ctx context.Context, role domain.Role) (*domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) RegisterInvoice(ctx context.Context, amount decimal.Decimal, description string) (*domain.Invoice, error) {
	args := m.Called(ctx, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) MakeOffer(ctx context.Context, invoiceID string, offerAmount decimal.Decimal) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, offerAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) AcceptFinancing(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) SettleInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockLedgerService) ListAuditEntries(ctx context.Context, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditEntriesResponse), args.Error(1)
}
func (m *MockLedgerService) VerifyAuditChain(ctx context.Context) (*domain.AuditVerification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditVerification), args.Error(1)
}
func (m *MockLedgerService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// newTestRouter builds the API the way main does, over the given mock.
func newTestRouter(ledger *MockLedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(discardLogger()))
	handlers.RegisterRoutes(r, &portssvc.ServiceContainer{Ledger: ledger})
	return r
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.router = newTestRouter(suite.mockLedger)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	accounts := domain.DefaultAccounts(domain.DefaultOpeningBalances())
	suite.mockLedger.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Accounts, 3)
	suite.Equal("ACC_INVEST_99", body.Accounts[1].AccountID)
	suite.True(body.Accounts[1].Balance.Equal(decimal.NewFromInt(50000)))
	suite.Contains(w.Body.String(), `"balance":"50000"`, "decimals are encoded as strings")
	suite.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_ByRole() {
	account := &domain.Account{
		AccountID:   "ACC_BUYER_55",
		Name:        "Rahul Retailers Inc.",
		Role:        domain.RoleBuyer,
		Balance:     decimal.NewFromInt(5000),
		AuditFields: domain.AuditFields{LastUpdatedAt: time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)},
	}
	suite.mockLedger.On("GetAccountByRole", mock.Anything, domain.RoleBuyer).Return(account, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/buyer", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.RoleBuyer, body.Role)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_UnknownRole() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/auditor", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "GetAccountByRole", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_ServiceError() {
	suite.mockLedger.On("ListAccounts", mock.Anything).Return(nil, errors.New("store offline")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to list accounts"}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetSummary() {
	summary := &domain.LedgerSummary{
		TotalBalance:     decimal.NewFromInt(56000),
		Balances:         map[domain.Role]decimal.Decimal{domain.RoleSeller: decimal.NewFromInt(1000)},
		InvoicesByStatus: map[domain.InvoiceStatus]int{domain.StatusCreated: 1},
		AuditEntries:     2,
	}
	suite.mockLedger.On("GetLedgerSummary", mock.Anything).Return(summary, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"totalBalance":"56000"`)
	suite.Contains(w.Body.String(), `"CREATED":1`)
}

func (suite *AccountHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFoundFromService() {
	suite.mockLedger.On("GetAccountByRole", mock.Anything, domain.RoleSeller).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/SELLER", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
