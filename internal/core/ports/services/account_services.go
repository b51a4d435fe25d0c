package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// AccountSvcFacade exposes account operations to the handlers. Every method
// scopes access to the requesting user; an account owned by someone else is
// reported as not found.
type AccountSvcFacade interface {
	// CreateAccount persists a new account for the user.
	CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves one of the user's accounts.
	GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves the user's accounts.
	ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]domain.Account, error)

	// UpdateAccount applies the provided field updates, including direct
	// balance adjustments.
	UpdateAccount(ctx context.Context, userID int64, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account permanently.
	DeleteAccount(ctx context.Context, userID int64, accountID int64) error
}
