package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/core/services"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// MockSubscriptionRepository is a mock type for the SubscriptionRepositoryFacade interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID int64) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID int64) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubRepo      *MockSubscriptionRepository
	mockAccountRepo  *MockAccountReader
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewSubscriptionService(suite.mockSubRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
}

// --- Test Cases ---

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateSubscriptionRequest{
		Name:            "Streaming",
		Amount:          decimal.Zero,
		BillingCycle:    domain.CycleMonthly,
		NextBillingDate: "2026-09-01",
	}

	created, err := suite.service.CreateSubscription(ctx, 42, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestListSubscriptions_NormalizesMonthlyCost() {
	ctx := context.Background()
	userID := int64(42)
	subs := []domain.Subscription{
		{SubscriptionID: 1, UserID: userID, Amount: decimal.RequireFromString("12"), BillingCycle: domain.CycleMonthly, IsActive: true},
		{SubscriptionID: 2, UserID: userID, Amount: decimal.RequireFromString("120"), BillingCycle: domain.CycleYearly, IsActive: true},
		{SubscriptionID: 3, UserID: userID, Amount: decimal.RequireFromString("30"), BillingCycle: domain.CycleQuarterly, IsActive: true},
		{SubscriptionID: 4, UserID: userID, Amount: decimal.RequireFromString("99"), BillingCycle: domain.CycleMonthly, IsActive: false},
	}

	suite.mockSubRepo.On("ListSubscriptions", ctx, userID, false).Return(subs, nil).Once()

	got, totalMonthly, err := suite.service.ListSubscriptions(ctx, userID, false)

	suite.Require().NoError(err)
	suite.Len(got, 4)
	// 12 + 120/12 + 30/3, inactive subscriptions excluded.
	suite.True(totalMonthly.Equal(decimal.RequireFromString("32")), "total: %s", totalMonthly)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestAdvanceBillingDate_MovesOneCycle() {
	ctx := context.Background()
	userID := int64(42)
	sub := &domain.Subscription{
		SubscriptionID:  1,
		UserID:          userID,
		Name:            "Gym",
		Amount:          decimal.RequireFromString("35"),
		BillingCycle:    domain.CycleMonthly,
		NextBillingDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}

	suite.mockSubRepo.On("FindSubscriptionByID", ctx, sub.SubscriptionID).Return(sub, nil).Once()

	var updatedArg domain.Subscription
	suite.mockSubRepo.On("UpdateSubscription", ctx, mock.AnythingOfType("domain.Subscription")).
		Run(func(args mock.Arguments) { updatedArg = args.Get(1).(domain.Subscription) }).
		Return(nil).Once()

	advanced, err := suite.service.AdvanceBillingDate(ctx, userID, sub.SubscriptionID)

	suite.Require().NoError(err)
	suite.Require().NotNil(advanced)
	suite.Equal(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), updatedArg.NextBillingDate)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_ValidatesReferences() {
	ctx := context.Background()
	userID := int64(42)
	categoryID := int64(9)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).
		Return(&domain.Category{CategoryID: categoryID, UserID: 99}, nil).Once()

	req := dto.CreateSubscriptionRequest{
		Name:            "News",
		Amount:          decimal.RequireFromString("5"),
		BillingCycle:    domain.CycleMonthly,
		NextBillingDate: "2026-09-01",
		CategoryID:      &categoryID,
	}
	created, err := suite.service.CreateSubscription(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

// --- Run Suite ---

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
