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
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/core/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetByMonth(ctx context.Context, userID int64, year int, month int) (*domain.Budget, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID int64, year *int) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error) {
	args := m.Called(ctx, budget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID int64) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) GetCategorySpending(ctx context.Context, userID int64, year int, month int) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockCategoryRepo)
}

func ownedCategory(categoryID, userID int64, name string) *domain.Category {
	return &domain.Category{
		CategoryID: categoryID,
		UserID:     userID,
		Name:       name,
		Type:       domain.CategoryExpense,
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_SavesItemsAfterValidation() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(2000),
		Items: []dto.BudgetItemRequest{
			{CategoryID: 10, Allocated: decimal.NewFromInt(600)},
			{CategoryID: 11, Allocated: decimal.NewFromInt(400)},
		},
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, int64(10)).Return(ownedCategory(10, 1, "Groceries"), nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, int64(11)).Return(ownedCategory(11, 1, "Transport"), nil)
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == 1 && b.Month == 3 && b.Year == 2026 && len(b.Items) == 2 &&
			b.Items[0].CategoryID == 10 && b.Items[0].Allocated.Equal(decimal.NewFromInt(600))
	})).Return(&domain.Budget{BudgetID: 7, UserID: 1, Month: 3, Year: 2026}, nil)

	budget, err := suite.service.CreateBudget(ctx, 1, req)

	suite.NoError(err)
	suite.Equal(int64(7), budget.BudgetID)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsNonPositiveAllocation() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(500),
		Items: []dto.BudgetItemRequest{
			{CategoryID: 10, Allocated: decimal.Zero},
		},
	}

	budget, err := suite.service.CreateBudget(ctx, 1, req)

	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsRepeatedCategory() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(500),
		Items: []dto.BudgetItemRequest{
			{CategoryID: 10, Allocated: decimal.NewFromInt(100)},
			{CategoryID: 10, Allocated: decimal.NewFromInt(200)},
		},
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, int64(10)).Return(ownedCategory(10, 1, "Groceries"), nil)

	budget, err := suite.service.CreateBudget(ctx, 1, req)

	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ForeignCategoryIsNotFound() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(500),
		Items: []dto.BudgetItemRequest{
			{CategoryID: 10, Allocated: decimal.NewFromInt(100)},
		},
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, int64(10)).Return(ownedCategory(10, 99, "Groceries"), nil)

	budget, err := suite.service.CreateBudget(ctx, 1, req)

	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_PropagatesDuplicateMonth() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(500),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).
		Return(nil, apperrors.ErrDuplicate)

	budget, err := suite.service.CreateBudget(ctx, 1, req)

	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BudgetServiceTestSuite) TestGetCurrentBudget_UsesTodaysMonth() {
	ctx := context.Background()
	now := time.Now()
	expected := &domain.Budget{BudgetID: 3, UserID: 1, Month: int(now.Month()), Year: now.Year()}

	suite.mockBudgetRepo.On("FindBudgetByMonth", ctx, int64(1), now.Year(), int(now.Month())).
		Return(expected, nil)

	budget, err := suite.service.GetCurrentBudget(ctx, 1)

	suite.NoError(err)
	suite.Equal(expected, budget)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestGetBudgetProgress_ComputesSpentAgainstAllocations() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID:    5,
		UserID:      1,
		Month:       3,
		Year:        2026,
		TotalBudget: decimal.NewFromInt(1000),
		Items: []domain.BudgetItem{
			{BudgetItemID: 1, CategoryID: 10, CategoryName: "Groceries", Allocated: decimal.NewFromInt(400)},
			{BudgetItemID: 2, CategoryID: 11, CategoryName: "Transport", Allocated: decimal.NewFromInt(100)},
		},
	}
	spent := map[int64]decimal.Decimal{
		10: decimal.NewFromInt(300),
		// no spending recorded for category 11
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, int64(5)).Return(budget, nil)
	suite.mockBudgetRepo.On("GetCategorySpending", ctx, int64(1), 2026, 3).Return(spent, nil)

	progress, err := suite.service.GetBudgetProgress(ctx, 1, 5)

	suite.NoError(err)
	suite.True(progress.TotalAllocated.Equal(decimal.NewFromInt(500)), "allocated: %s", progress.TotalAllocated)
	suite.True(progress.TotalSpent.Equal(decimal.NewFromInt(300)), "spent: %s", progress.TotalSpent)
	suite.True(progress.TotalRemaining.Equal(decimal.NewFromInt(700)), "remaining: %s", progress.TotalRemaining)
	suite.True(progress.PercentUsed.Equal(decimal.NewFromInt(30)), "percent: %s", progress.PercentUsed)

	suite.Require().Len(progress.Items, 2)
	groceries := progress.Items[0]
	suite.True(groceries.Spent.Equal(decimal.NewFromInt(300)))
	suite.True(groceries.Remaining.Equal(decimal.NewFromInt(100)))
	suite.True(groceries.PercentUsed.Equal(decimal.NewFromInt(75)))
	transport := progress.Items[1]
	suite.True(transport.Spent.IsZero())
	suite.True(transport.Remaining.Equal(decimal.NewFromInt(100)))
	suite.True(transport.PercentUsed.IsZero())
}

func (suite *BudgetServiceTestSuite) TestGetBudgetProgress_ForeignBudgetIsNotFound() {
	ctx := context.Background()
	budget := &domain.Budget{BudgetID: 5, UserID: 99, Month: 3, Year: 2026}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, int64(5)).Return(budget, nil)

	progress, err := suite.service.GetBudgetProgress(ctx, 1, 5)

	suite.Nil(progress)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "GetCategorySpending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_ChecksOwnershipFirst() {
	ctx := context.Background()
	budget := &domain.Budget{BudgetID: 5, UserID: 1, Month: 3, Year: 2026}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, int64(5)).Return(budget, nil)
	suite.mockBudgetRepo.On("DeleteBudget", ctx, int64(5)).Return(nil)

	err := suite.service.DeleteBudget(ctx, 1, 5)

	suite.NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
