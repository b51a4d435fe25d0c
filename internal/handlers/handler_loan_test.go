package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/handlers"
	"github.com/finbook/finbook_app/internal/utils"
	"github.com/finbook/finbook_app/pkg/config"
)

// --- Mock LoanService ---

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, userID int64, req dto.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) GetLoanByID(ctx context.Context, userID int64, loanID int64) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanService) GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanSummary), args.Error(1)
}

func (m *MockLoanService) GetAmortizationSchedule(ctx context.Context, userID int64, loanID int64) (*domain.Loan, []domain.AmortizationEntry, error) {
	args := m.Called(ctx, userID, loanID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Loan), args.Get(1).([]domain.AmortizationEntry), args.Error(2)
}

func (m *MockLoanService) UpdateLoan(ctx context.Context, userID int64, loanID int64, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, userID, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) DeleteLoan(ctx context.Context, userID int64, loanID int64) error {
	args := m.Called(ctx, userID, loanID)
	return args.Error(0)
}

func (m *MockLoanService) RecordPayment(ctx context.Context, userID int64, loanID int64, req dto.RecordLoanPaymentRequest) (*domain.LoanPayment, error) {
	args := m.Called(ctx, userID, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPayment), args.Error(1)
}

func (m *MockLoanService) ListPayments(ctx context.Context, userID int64, loanID int64, limit int) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, userID, loanID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Test Suite Setup ---

const testJWTSecret = "handler-test-secret"

type LoanHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockLoanSvc *MockLoanService
	authHeader  string
	userID      int64
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockLoanSvc = new(MockLoanService)
	suite.userID = 42

	cfg := &config.Config{JWTSecret: testJWTSecret}
	container := &portssvc.ServiceContainer{Loan: suite.mockLoanSvc}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)

	token, err := utils.GenerateJWT(42, testJWTSecret, time.Hour, "finbook-test")
	suite.Require().NoError(err)
	suite.authHeader = "Bearer " + token
}

func (suite *LoanHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", suite.authHeader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoanHandlerTestSuite) TestRecordPayment_Created() {
	payment := &domain.LoanPayment{
		PaymentID:     55,
		LoanID:        7,
		Amount:        decimal.RequireFromString("100"),
		PrincipalPaid: decimal.RequireFromString("90"),
		InterestPaid:  decimal.RequireFromString("10"),
		BalanceAfter:  decimal.RequireFromString("910"),
		PaymentDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockLoanSvc.On("RecordPayment", mock.Anything, suite.userID, int64(7), mock.AnythingOfType("dto.RecordLoanPaymentRequest")).
		Return(payment, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/7/payments", gin.H{
		"amount":      "100",
		"paymentDate": "2026-02-01",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LoanPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(55), resp.PaymentID)
	suite.True(resp.PrincipalPaid.Equal(decimal.RequireFromString("90")))
	suite.mockLoanSvc.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRecordPayment_RetiredLoanIsBadRequest() {
	suite.mockLoanSvc.On("RecordPayment", mock.Anything, suite.userID, int64(7), mock.AnythingOfType("dto.RecordLoanPaymentRequest")).
		Return(nil, apperrors.NewValidationError("loan is already paid off")).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/loans/7/payments", gin.H{
		"amount":      "100",
		"paymentDate": "2026-02-01",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanSvc.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	suite.mockLoanSvc.On("GetLoanByID", mock.Anything, suite.userID, int64(9)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/loans/9", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanSvc.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetAmortizationSchedule_OK() {
	loan := &domain.Loan{
		LoanID:            7,
		UserID:            suite.userID,
		Name:              "Car loan",
		OriginalPrincipal: decimal.RequireFromString("1200"),
		CurrentBalance:    decimal.RequireFromString("1200"),
		TermMonths:        12,
		MonthlyPayment:    decimal.RequireFromString("100"),
		StartDate:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:          true,
	}
	schedule := []domain.AmortizationEntry{
		{PaymentNumber: 1, PaymentAmount: decimal.RequireFromString("100"), Principal: decimal.RequireFromString("100"), Interest: decimal.Zero, Balance: decimal.RequireFromString("1100")},
	}

	suite.mockLoanSvc.On("GetAmortizationSchedule", mock.Anything, suite.userID, loan.LoanID).
		Return(loan, schedule, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/loans/%d/schedule", loan.LoanID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AmortizationScheduleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Schedule, 1)
	suite.Equal(1, resp.Schedule[0].PaymentNumber)
	suite.mockLoanSvc.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestListLoans_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLoanSvc.AssertNotCalled(suite.T(), "ListLoans", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestGetLoan_BadIDParam() {
	w := suite.doRequest(http.MethodGet, "/api/v1/loans/not-a-number", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Suite ---

func TestLoanHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
