package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// TransactionSvcFacade exposes the balance ledger to the handlers. Create,
// update, and delete each execute as one atomic unit of work: the row change
// and every affected account's balance delta commit together or not at all.
type TransactionSvcFacade interface {
	// CreateTransaction inserts a transaction and applies its amount to the
	// target account (and the negated amount to the transfer destination).
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves one of the user's transactions.
	GetTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter along with
	// the total match count.
	ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, int, error)

	// UpdateTransaction applies the provided field updates; an amount change
	// adjusts the affected balances by the difference.
	UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect
	// exactly.
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error
}
