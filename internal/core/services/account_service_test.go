package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/core/services"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_BankAccount() {
	ctx := context.Background()
	userID := int64(42)
	req := dto.CreateAccountRequest{
		Name:           "Everyday checking",
		Kind:           domain.AccountBank,
		InitialBalance: decimal.RequireFromString("2500"),
		Institution:    "First National",
	}

	var savedArg domain.Account
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedArg = args.Get(1).(domain.Account) }).
		Return(&domain.Account{AccountID: 1, Kind: domain.AccountBank}, nil).Once()

	created, err := suite.service.CreateAccount(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(userID, savedArg.UserID)
	suite.True(savedArg.Balance.Equal(req.InitialBalance))
	suite.True(savedArg.IsActive)
	suite.Nil(savedArg.CreditCard)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditCardWithDetails() {
	ctx := context.Background()
	limit := decimal.RequireFromString("5000")
	rate := decimal.RequireFromString("19.99")
	day := 15
	req := dto.CreateAccountRequest{
		Name: "Rewards card",
		Kind: domain.AccountCreditCard,
		CreditCard: &dto.CreditCardDetailsDTO{
			CreditLimit:     limit,
			InterestRate:    rate,
			BillingCycleDay: day,
		},
	}

	var savedArg domain.Account
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedArg = args.Get(1).(domain.Account) }).
		Return(&domain.Account{AccountID: 2, Kind: domain.AccountCreditCard}, nil).Once()

	_, err := suite.service.CreateAccount(ctx, 42, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(savedArg.CreditCard)
	suite.True(savedArg.CreditCard.CreditLimit.Equal(limit))
	suite.Equal(day, savedArg.CreditCard.BillingCycleDay)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MismatchedDetailPayload() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name: "Checking",
		Kind: domain.AccountBank,
		CreditCard: &dto.CreditCardDetailsDTO{
			CreditLimit: decimal.RequireFromString("5000"),
		},
	}

	created, err := suite.service.CreateAccount(ctx, 42, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DirectBalanceEdit() {
	ctx := context.Background()
	userID := int64(42)
	existing := &domain.Account{
		AccountID: 1,
		UserID:    userID,
		Name:      "Checking",
		Kind:      domain.AccountBank,
		Balance:   decimal.RequireFromString("500"),
		IsActive:  true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()

	var updatedArg domain.Account
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { updatedArg = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	newBalance := decimal.RequireFromString("1234.56")
	updated, err := suite.service.UpdateAccount(ctx, userID, existing.AccountID, dto.UpdateAccountRequest{Balance: &newBalance})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updatedArg.Balance.Equal(newBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_ForeignAccountIsNotFound() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: 1, UserID: 99, Kind: domain.AccountBank}

	suite.mockRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, 42, existing.AccountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
