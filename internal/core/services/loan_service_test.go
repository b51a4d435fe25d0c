package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/core/services"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// MockLoanRepository is a mock type for the LoanRepositoryFacade interface
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanSummary), args.Error(1)
}

func (m *MockLoanRepository) ListLoanPayments(ctx context.Context, loanID int64, limit int) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) (*domain.Loan, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockLoanRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockLoanRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*domain.Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) RecordPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LoanPayment, loan domain.Loan) (*domain.LoanPayment, error) {
	args := m.Called(ctx, tx, payment, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPayment), args.Error(1)
}

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo    *MockLoanRepository
	mockAccountRepo *MockAccountReader
	service         portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.service = services.NewLoanService(suite.mockLoanRepo, suite.mockAccountRepo)
}

func (suite *LoanServiceTestSuite) activeLoan(userID int64) *domain.Loan {
	return &domain.Loan{
		LoanID:            7,
		UserID:            userID,
		Name:              "Car loan",
		LoanType:          "auto",
		OriginalPrincipal: decimal.RequireFromString("1000"),
		CurrentBalance:    decimal.RequireFromString("1000"),
		InterestRate:      decimal.RequireFromString("12"),
		TermMonths:        12,
		StartDate:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:    decimal.RequireFromString("88.85"),
		TotalPaid:         decimal.Zero,
		IsActive:          true,
	}
}

// expectPaymentTx wires the transaction lifecycle the payment path drives.
// The mock transaction is nil; only the call sequence matters here.
func (suite *LoanServiceTestSuite) expectPaymentTx() {
	suite.mockLoanRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockLoanRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

// --- Test Cases ---

func (suite *LoanServiceTestSuite) TestCreateLoan_ComputesStraightLinePaymentAtZeroRate() {
	ctx := context.Background()
	userID := int64(42)
	req := dto.CreateLoanRequest{
		Name:              "Family loan",
		LoanType:          "personal",
		OriginalPrincipal: decimal.RequireFromString("1200"),
		InterestRate:      decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-01",
	}

	var savedArg domain.Loan
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) { savedArg = args.Get(1).(domain.Loan) }).
		Return(&domain.Loan{LoanID: 1, MonthlyPayment: decimal.RequireFromString("100")}, nil).Once()

	created, err := suite.service.CreateLoan(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.True(savedArg.MonthlyPayment.Equal(decimal.RequireFromString("100")))
	suite.True(savedArg.CurrentBalance.Equal(req.OriginalPrincipal))
	suite.True(savedArg.TotalPaid.IsZero())
	suite.True(savedArg.IsActive)
	suite.Equal(userID, savedArg.UserID)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_HonorsExplicitMonthlyPayment() {
	ctx := context.Background()
	payment := decimal.RequireFromString("150")
	req := dto.CreateLoanRequest{
		Name:              "Mortgage",
		LoanType:          "mortgage",
		OriginalPrincipal: decimal.RequireFromString("10000"),
		InterestRate:      decimal.RequireFromString("6.5"),
		TermMonths:        120,
		StartDate:         "2026-03-01",
		MonthlyPayment:    &payment,
	}

	var savedArg domain.Loan
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) { savedArg = args.Get(1).(domain.Loan) }).
		Return(&domain.Loan{LoanID: 2, MonthlyPayment: payment}, nil).Once()

	_, err := suite.service.CreateLoan(ctx, 42, req)

	suite.Require().NoError(err)
	suite.True(savedArg.MonthlyPayment.Equal(payment))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_RejectsNonPositivePrincipal() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		Name:              "Bad loan",
		OriginalPrincipal: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-01",
	}

	created, err := suite.service.CreateLoan(ctx, 42, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRecordPayment_SplitsInterestAndPrincipal() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)

	suite.expectPaymentTx()
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	var paymentArg domain.LoanPayment
	var loanArg domain.Loan
	suite.mockLoanRepo.On("RecordPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LoanPayment"), mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) {
			paymentArg = args.Get(2).(domain.LoanPayment)
			loanArg = args.Get(3).(domain.Loan)
		}).
		Return(&domain.LoanPayment{PaymentID: 55}, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:      decimal.RequireFromString("100"),
		PaymentDate: "2026-02-01",
	}
	saved, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)

	// 1000 balance at 12% annual accrues 10 of interest in one month.
	suite.True(paymentArg.InterestPaid.Equal(decimal.RequireFromString("10")), "interest: %s", paymentArg.InterestPaid)
	suite.True(paymentArg.PrincipalPaid.Equal(decimal.RequireFromString("90")), "principal: %s", paymentArg.PrincipalPaid)
	suite.True(paymentArg.BalanceAfter.Equal(decimal.RequireFromString("910")), "balance: %s", paymentArg.BalanceAfter)
	suite.True(loanArg.CurrentBalance.Equal(decimal.RequireFromString("910")))
	suite.True(loanArg.TotalPaid.Equal(decimal.RequireFromString("100")))
	suite.True(loanArg.IsActive)

	// The split is computed from the locked row, never from a plain read.
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanByID", mock.Anything, mock.Anything)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRecordPayment_BelowInterestGrowsBalance() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)

	suite.expectPaymentTx()
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	var paymentArg domain.LoanPayment
	var loanArg domain.Loan
	suite.mockLoanRepo.On("RecordPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LoanPayment"), mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) {
			paymentArg = args.Get(2).(domain.LoanPayment)
			loanArg = args.Get(3).(domain.Loan)
		}).
		Return(&domain.LoanPayment{PaymentID: 58}, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:      decimal.RequireFromString("5"),
		PaymentDate: "2026-02-01",
	}
	_, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().NoError(err)

	// Interest due is 10; a 5 payment records the full interest and a
	// negative principal, and the shortfall grows the balance.
	suite.True(paymentArg.InterestPaid.Equal(decimal.RequireFromString("10")), "interest: %s", paymentArg.InterestPaid)
	suite.True(paymentArg.PrincipalPaid.Equal(decimal.RequireFromString("-5")), "principal: %s", paymentArg.PrincipalPaid)
	suite.True(paymentArg.BalanceAfter.Equal(decimal.RequireFromString("1005")), "balance: %s", paymentArg.BalanceAfter)
	suite.True(loanArg.CurrentBalance.Equal(decimal.RequireFromString("1005")))
	suite.True(loanArg.TotalPaid.Equal(decimal.RequireFromString("5")))
	suite.True(loanArg.IsActive)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRecordPayment_ExtraPrincipalReducesBalance() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)

	suite.expectPaymentTx()
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	var paymentArg domain.LoanPayment
	suite.mockLoanRepo.On("RecordPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LoanPayment"), mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) { paymentArg = args.Get(2).(domain.LoanPayment) }).
		Return(&domain.LoanPayment{PaymentID: 56}, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:         decimal.RequireFromString("100"),
		ExtraPrincipal: decimal.RequireFromString("50"),
		PaymentDate:    "2026-02-01",
	}
	_, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().NoError(err)
	suite.True(paymentArg.Amount.Equal(decimal.RequireFromString("150")))
	suite.True(paymentArg.InterestPaid.Equal(decimal.RequireFromString("10")))
	suite.True(paymentArg.PrincipalPaid.Equal(decimal.RequireFromString("140")))
	suite.True(paymentArg.BalanceAfter.Equal(decimal.RequireFromString("860")))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRecordPayment_OverpaymentClampRetiresLoan() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)
	loan.CurrentBalance = decimal.RequireFromString("50")

	suite.expectPaymentTx()
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	var paymentArg domain.LoanPayment
	var loanArg domain.Loan
	suite.mockLoanRepo.On("RecordPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LoanPayment"), mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) {
			paymentArg = args.Get(2).(domain.LoanPayment)
			loanArg = args.Get(3).(domain.Loan)
		}).
		Return(&domain.LoanPayment{PaymentID: 57}, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:      decimal.RequireFromString("60"),
		PaymentDate: "2026-02-01",
	}
	_, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().NoError(err)

	// Principal is capped at the 50 owed; interest absorbs the remaining 10
	// so the split still sums to the 60 paid.
	suite.True(paymentArg.PrincipalPaid.Equal(decimal.RequireFromString("50")), "principal: %s", paymentArg.PrincipalPaid)
	suite.True(paymentArg.InterestPaid.Equal(decimal.RequireFromString("10")), "interest: %s", paymentArg.InterestPaid)
	suite.True(paymentArg.BalanceAfter.IsZero())
	suite.True(loanArg.CurrentBalance.IsZero())
	suite.False(loanArg.IsActive)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRecordPayment_OverpaymentWithExtraKeepsSplitSum() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)
	loan.CurrentBalance = decimal.RequireFromString("50")

	suite.expectPaymentTx()
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	var paymentArg domain.LoanPayment
	suite.mockLoanRepo.On("RecordPaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LoanPayment"), mock.AnythingOfType("domain.Loan")).
		Run(func(args mock.Arguments) { paymentArg = args.Get(2).(domain.LoanPayment) }).
		Return(&domain.LoanPayment{PaymentID: 59}, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:         decimal.RequireFromString("30"),
		ExtraPrincipal: decimal.RequireFromString("40"),
		PaymentDate:    "2026-02-01",
	}
	_, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().NoError(err)

	// When extra principal overpays, the clamp balances against everything
	// paid: principal caps at the 50 owed and interest takes the other 20,
	// keeping principal + interest = amount + extra.
	suite.True(paymentArg.Amount.Equal(decimal.RequireFromString("70")))
	suite.True(paymentArg.PrincipalPaid.Equal(decimal.RequireFromString("50")), "principal: %s", paymentArg.PrincipalPaid)
	suite.True(paymentArg.InterestPaid.Equal(decimal.RequireFromString("20")), "interest: %s", paymentArg.InterestPaid)
	suite.True(paymentArg.BalanceAfter.IsZero())
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRecordPayment_RejectsRetiredLoan() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)
	loan.CurrentBalance = decimal.Zero
	loan.IsActive = false

	suite.mockLoanRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockLoanRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:      decimal.RequireFromString("100"),
		PaymentDate: "2026-02-01",
	}
	saved, err := suite.service.RecordPayment(ctx, userID, loan.LoanID, req)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "RecordPaymentInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRecordPayment_ForeignLoanIsNotFound() {
	ctx := context.Background()
	loan := suite.activeLoan(99)

	suite.mockLoanRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockLoanRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", ctx, mock.Anything, loan.LoanID).Return(loan, nil).Once()

	req := dto.RecordLoanPaymentRequest{
		Amount:      decimal.RequireFromString("100"),
		PaymentDate: "2026-02-01",
	}
	saved, err := suite.service.RecordPayment(ctx, 42, loan.LoanID, req)

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestGetAmortizationSchedule_ZeroRateLoan() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)
	loan.InterestRate = decimal.Zero
	loan.OriginalPrincipal = decimal.RequireFromString("1200")
	loan.MonthlyPayment = decimal.RequireFromString("100")

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	_, schedule, err := suite.service.GetAmortizationSchedule(ctx, userID, loan.LoanID)

	suite.Require().NoError(err)
	suite.Require().Len(schedule, 12)
	for _, entry := range schedule {
		suite.True(entry.Principal.Equal(decimal.RequireFromString("100")))
		suite.True(entry.Interest.IsZero())
	}
	suite.True(schedule[11].Balance.IsZero())
	suite.True(schedule[11].CumulativePrincipal.Equal(decimal.RequireFromString("1200")))
}

func (suite *LoanServiceTestSuite) TestDeleteLoan_RepositoryError() {
	ctx := context.Background()
	userID := int64(42)
	loan := suite.activeLoan(userID)

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("DeleteLoan", ctx, loan.LoanID).Return(assert.AnError).Once()

	err := suite.service.DeleteLoan(ctx, userID, loan.LoanID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
