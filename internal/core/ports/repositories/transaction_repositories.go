package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListTransactions results. Zero values mean "no
// constraint" except the pointers, which distinguish unset from zero.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal // compared against the absolute amount
	MaxAmount  *decimal.Decimal
	Search     string // matches description, payee, notes
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves transactions for a user matching the filter,
	// newest first, along with the total number of matching rows.
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter) ([]domain.Transaction, int, error)
}

// TransactionWriter defines the ledger's atomic write operations. Every
// method applies the row change and the account balance deltas inside one
// database transaction: they commit together or not at all.
type TransactionWriter interface {
	// SaveTransaction inserts the transaction row and applies balanceChanges
	// to the affected accounts atomically. Returns the stored transaction
	// with its assigned ID.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error)

	// UpdateTransaction updates the mutable fields of the row and applies
	// balanceChanges (the amount delta and its transfer negation) atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) error

	// DeleteTransaction removes the row and applies balanceChanges (the exact
	// inverse of the creation effect) atomically.
	DeleteTransaction(ctx context.Context, transactionID int64, balanceChanges map[int64]decimal.Decimal, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
