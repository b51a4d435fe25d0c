package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// CategorySvcFacade exposes category operations to the handlers.
type CategorySvcFacade interface {
	// CreateCategory persists a new category for the user.
	CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error)

	// ListCategories retrieves the user's categories, optionally filtered by type.
	ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error)

	// UpdateCategory applies the provided field updates.
	UpdateCategory(ctx context.Context, userID int64, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category; it fails with ErrConflict while
	// transactions still reference it.
	DeleteCategory(ctx context.Context, userID int64, categoryID int64) error

	// SeedDefaults inserts the configured default categories for a user that
	// has none yet.
	SeedDefaults(ctx context.Context, userID int64) error
}
