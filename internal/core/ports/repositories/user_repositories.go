package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// UserRepositoryFacade defines operations for user data.
type UserRepositoryFacade interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// SaveUser persists a new user and returns it with its assigned ID.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of a user's refresh
	// token; empty hash clears it.
	UpdateRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt *time.Time, now time.Time) error
}
