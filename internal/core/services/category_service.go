package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// defaultCategories is the starter set seeded for every new user.
var defaultCategories = []struct {
	Name string
	Type domain.CategoryType
	Icon string
}{
	{"Salary", domain.CategoryIncome, "briefcase"},
	{"Interest", domain.CategoryIncome, "percent"},
	{"Other Income", domain.CategoryIncome, "plus-circle"},
	{"Groceries", domain.CategoryExpense, "shopping-cart"},
	{"Rent", domain.CategoryExpense, "home"},
	{"Utilities", domain.CategoryExpense, "zap"},
	{"Transport", domain.CategoryExpense, "car"},
	{"Dining", domain.CategoryExpense, "coffee"},
	{"Entertainment", domain.CategoryExpense, "film"},
	{"Healthcare", domain.CategoryExpense, "heart"},
	{"Insurance", domain.CategoryExpense, "shield"},
	{"Other", domain.CategoryExpense, "more-horizontal"},
}

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
		Icon:   req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.categoryRepo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.Int64("user_id", userID))
		return nil, err
	}

	return saved, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, userID, categoryType)
}

// findOwnedCategory fetches the category and hides other users' categories
// behind ErrNotFound.
func (s *categoryService) findOwnedCategory(ctx context.Context, userID int64, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID int64, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.Int64("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID int64, categoryID int64) error {
	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	// Refuse deletion while transactions still point at the category to keep
	// historical reports intact.
	count, err := s.categoryRepo.CountTransactionsForCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category is used by %d transactions", apperrors.ErrConflict, count)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		return err
	}

	return nil
}

func (s *categoryService) SeedDefaults(ctx context.Context, userID int64) error {
	now := time.Now()
	defaults := make([]domain.Category, len(defaultCategories))
	for i, d := range defaultCategories {
		defaults[i] = domain.Category{
			UserID: userID,
			Name:   d.Name,
			Type:   d.Type,
			Icon:   d.Icon,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}

	if err := s.categoryRepo.SeedDefaultCategories(ctx, userID, defaults); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.Int64("user_id", userID))
		return err
	}

	return nil
}
