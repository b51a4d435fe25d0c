package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// CategoryRepositoryFacade defines operations for category data.
type CategoryRepositoryFacade interface {
	// FindCategoryByID retrieves a specific category.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// ListCategories retrieves a user's categories, optionally filtered by type.
	ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error)

	// SaveCategory persists a new category and returns it with its assigned ID.
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Fails with ErrConflict while
	// transactions still reference it.
	DeleteCategory(ctx context.Context, categoryID int64) error

	// CountTransactionsForCategory reports how many transactions reference
	// the category.
	CountTransactionsForCategory(ctx context.Context, categoryID int64) (int, error)

	// SeedDefaultCategories inserts the given categories for a user if the
	// user has none yet.
	SeedDefaultCategories(ctx context.Context, userID int64, defaults []domain.Category) error
}
