package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decimalEq(want int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(want))
	})
}

func sampleInvoice(status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:   "INV-2024-001",
		Amount:      decimal.NewFromInt(10000),
		SellerName:  "Siva Electronics Ltd.",
		BuyerName:   "Rahul Retailers Inc.",
		Description: "Q4 Circuit Board Supply",
		Status:      status,
		DueDate:     time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		Offers:      []domain.Offer{},
	}
}

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
}

func (suite *InvoiceHandlerTestSuite) SetupSuite() {
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.router = newTestRouter(suite.mockLedger)
}

func (suite *InvoiceHandlerTestSuite) do(method, url string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *InvoiceHandlerTestSuite) TestRegisterInvoice_Created() {
	suite.mockLedger.On("RegisterInvoice", mock.Anything, decimalEq(10000), "Q4 Circuit Board Supply").
		Return(sampleInvoice(domain.StatusCreated), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices", `{"amount":"10000","description":"Q4 Circuit Board Supply"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.InvoiceActionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Invoice registered on Digital Ledger", body.Message)
	suite.Equal("INV-2024-001", body.Invoice.InvoiceID)
	suite.Equal("Pending Financing", body.Invoice.StatusLabel)
	suite.Equal("2025-12-15", body.Invoice.DueDate)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestRegisterInvoice_NumericAmountAccepted() {
	suite.mockLedger.On("RegisterInvoice", mock.Anything, decimalEq(2500), "Capacitor batch").
		Return(sampleInvoice(domain.StatusCreated), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices", `{"amount":2500,"description":"Capacitor batch"}`)
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestRegisterInvoice_BadInput() {
	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{"description":"Q4 Circuit Board Supply"}`},
		{"zero amount", `{"amount":"0","description":"Q4 Circuit Board Supply"}`},
		{"negative amount", `{"amount":"-5","description":"Q4 Circuit Board Supply"}`},
		{"missing description", `{"amount":"100"}`},
		{"malformed json", `{"amount":`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/invoices", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockLedger.AssertNotCalled(suite.T(), "RegisterInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_StatusFilter() {
	financed := domain.StatusFinanced
	suite.mockLedger.On("ListInvoices", mock.Anything, &financed).
		Return([]domain.Invoice{*sampleInvoice(domain.StatusFinanced)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices?status=FINANCED", "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListInvoicesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Invoices, 1)
	suite.Equal(domain.StatusFinanced, body.Invoices[0].Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_NoFilter() {
	suite.mockLedger.On("ListInvoices", mock.Anything, (*domain.InvoiceStatus)(nil)).
		Return([]domain.Invoice{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"invoices":[]}`, w.Body.String())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_UnknownStatus() {
	w := suite.do(http.MethodGet, "/api/v1/invoices?status=VOID", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	suite.mockLedger.On("GetInvoice", mock.Anything, "INV-2024-404").
		Return(nil, fmt.Errorf("%w: invoice INV-2024-404", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/INV-2024-404", "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestMakeOffer_Success() {
	offered := sampleInvoice(domain.StatusOfferMade)
	offered.Offers = []domain.Offer{{InvestorName: "Lakshmi Capital Corp.", Amount: decimal.NewFromInt(9800)}}
	suite.mockLedger.On("MakeOffer", mock.Anything, "INV-2024-001", decimalEq(9800)).Return(offered, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/offers", `{"amount":"9800"}`)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.InvoiceActionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Financing offer sent to Seller", body.Message)
	suite.Require().Len(body.Invoice.Offers, 1)
	suite.Equal("Lakshmi Capital Corp.", body.Invoice.Offers[0].InvestorName)
}

func (suite *InvoiceHandlerTestSuite) TestMakeOffer_OnFinancedInvoiceConflicts() {
	suite.mockLedger.On("MakeOffer", mock.Anything, "INV-2024-001", decimalEq(9000)).
		Return(nil, fmt.Errorf("%w: invoice INV-2024-001 is FINANCED", apperrors.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/offers", `{"amount":"9000"}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestAcceptFinancing_CreditMessage() {
	financed := sampleInvoice(domain.StatusFinanced)
	amount := decimal.NewFromInt(9800)
	financed.FinancedAmount = &amount
	suite.mockLedger.On("AcceptFinancing", mock.Anything, "INV-2024-001").Return(financed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/accept", "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.InvoiceActionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("₹9800 credited to your account.", body.Message)
	suite.Require().NotNil(body.Invoice.FinancedAmount)
	suite.True(body.Invoice.FinancedAmount.Equal(amount))
}

func (suite *InvoiceHandlerTestSuite) TestSettleInvoice_InsufficientFunds() {
	suite.mockLedger.On("SettleInvoice", mock.Anything, "INV-2024-001").
		Return(nil, fmt.Errorf("%w: buyer balance 5000 cannot cover 10000", apperrors.ErrInsufficientFunds)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/settle", "")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.JSONEq(`{"error":"Insufficient funds in operating account"}`, w.Body.String())
}

func (suite *InvoiceHandlerTestSuite) TestSettleInvoice_Success() {
	paid := sampleInvoice(domain.StatusPaid)
	paid.SettledTo = domain.RoleInvestor
	suite.mockLedger.On("SettleInvoice", mock.Anything, "INV-2024-001").Return(paid, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/settle", "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.InvoiceActionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Payment processed successfully", body.Message)
	suite.Equal(domain.RoleInvestor, body.Invoice.SettledTo)
	suite.Equal("Settled (Closed)", body.Invoice.StatusLabel)
}

func (suite *InvoiceHandlerTestSuite) TestSettleInvoice_UnexpectedError() {
	suite.mockLedger.On("SettleInvoice", mock.Anything, "INV-2024-001").Return(nil, errors.New("disk on fire")).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/INV-2024-001/settle", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "disk on fire")
}

func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
