package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/finbook/finbook_app/internal/models"
	"github.com/finbook/finbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, name, type, icon, created_at, last_updated_at`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.Icon,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCategory inserts a new category and returns it with the generated ID.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (user_id, name, type, icon, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING category_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Name,
		m.Type,
		m.Icon,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.CategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	saved := mapping.ToDomainCategory(m)
	return &saved, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %d: %w", categoryID, err)
	}

	cat := mapping.ToDomainCategory(*m)
	return &cat, nil
}

// ListCategories retrieves a user's categories, optionally filtered by type.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, *categoryType)
	}
	query += ` ORDER BY type, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %d: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return categories, nil
}

// UpdateCategory updates an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, type = $3, icon = $4, last_updated_at = $5
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.Type, m.Icon, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute update category %d: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign key violation
			return fmt.Errorf("%w: category %d is still referenced by transactions", apperrors.ErrConflict, categoryID)
		}
		return fmt.Errorf("failed to delete category %d: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountTransactionsForCategory reports how many transactions reference the category.
func (r *PgxCategoryRepository) CountTransactionsForCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %d: %w", categoryID, err)
	}
	return count, nil
}

// SeedDefaultCategories inserts the default set for a user who has none yet.
// The existence check and the inserts share a transaction so concurrent
// seeding cannot double up.
func (r *PgxCategoryRepository) SeedDefaultCategories(ctx context.Context, userID int64, defaults []domain.Category) error {
	if len(defaults) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var existing int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE user_id = $1;`, userID).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check existing categories for user %d: %w", userID, err)
	}
	if existing > 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO categories (user_id, name, type, icon, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, cat := range defaults {
		m := mapping.ToModelCategory(cat)
		batch.Queue(insertQuery, userID, m.Name, m.Type, m.Icon, m.CreatedAt, m.LastUpdatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to seed default category for user %d: %w", userID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close category seed batch: %w", err)
	}

	return r.Commit(ctx, tx)
}
