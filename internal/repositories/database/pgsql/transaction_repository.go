package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/finbook/finbook_app/internal/models"
	"github.com/finbook/finbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, account_id, category_id, transfer_to_account_id,
		amount, date, description, payee, notes, created_at, last_updated_at`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository is injected so balance deltas can be applied inside
// the same database transaction as the row change.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.TransferToAccountID,
		&m.Amount,
		&m.Date,
		&m.Description,
		&m.Payee,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTransaction inserts the transaction row and applies the balance deltas
// to the affected accounts within one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // no-op after successful commit

	m := mapping.ToModelTransaction(txn)
	now := m.CreatedAt

	insertQuery := `
		INSERT INTO transactions (user_id, account_id, category_id, transfer_to_account_id,
			amount, date, description, payee, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.UserID,
		m.AccountID,
		m.CategoryID,
		m.TransferToAccountID,
		m.Amount,
		m.Date,
		m.Description,
		m.Payee,
		m.Notes,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.TransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

// UpdateTransaction updates the row and applies the balance deltas caused by
// the edit within one database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)

	updateQuery := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, transfer_to_account_id = $4,
			amount = $5, date = $6, description = $7, payee = $8, notes = $9,
			last_updated_at = $10
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.TransactionID,
		m.AccountID,
		m.CategoryID,
		m.TransferToAccountID,
		m.Amount,
		m.Date,
		m.Description,
		m.Payee,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update transaction %d", m.TransactionID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the row and applies the inverse balance deltas
// within one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64, balanceChanges map[int64]decimal.Decimal, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete transaction %d", transactionID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the affected accounts then applies the deltas.
// Locking first keeps concurrent ledger writes serialized per account.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]int64, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %d: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactions retrieves a user's transactions matching the filter,
// newest first, along with the total matching row count.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID int64, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	addArg := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.AccountID != nil {
		// Transfers touch both sides, so match either endpoint.
		addArg("(account_id = $%[1]d OR transfer_to_account_id = $%[1]d)", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		addArg("category_id = $%d", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		addArg("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addArg("date <= $%d", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		addArg("ABS(amount) >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addArg("ABS(amount) <= $%d", *filter.MaxAmount)
	}
	if filter.Search != "" {
		addArg("(description ILIKE $%[1]d OR payee ILIKE $%[1]d OR notes ILIKE $%[1]d)", "%"+filter.Search+"%")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %d: %w", userID, err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+transactionColumns+`
		FROM transactions
		WHERE `+where+`
		ORDER BY date DESC, transaction_id DESC
		LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return transactions, total, nil
}
