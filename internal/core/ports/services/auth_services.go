package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// AuthSvcFacade exposes registration and token operations to the handlers.
type AuthSvcFacade interface {
	// Register creates a new user with a bcrypt-hashed password and seeds
	// their default categories.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Login verifies credentials and issues an access token plus a refresh
	// token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)

	// Refresh rotates a valid refresh token into a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)

	// GetUserByID retrieves a user for profile display.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}
