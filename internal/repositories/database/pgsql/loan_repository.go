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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const loanColumns = `loan_id, user_id, name, loan_type, original_principal, current_balance,
		interest_rate, term_months, start_date, monthly_payment, total_paid,
		account_id, notes, is_active, created_at, last_updated_at`

const loanPaymentColumns = `payment_id, loan_id, amount, principal_paid, interest_paid,
		extra_principal, balance_after, payment_date, notes, created_at`

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan and payment data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.UserID,
		&m.Name,
		&m.LoanType,
		&m.OriginalPrincipal,
		&m.CurrentBalance,
		&m.InterestRate,
		&m.TermMonths,
		&m.StartDate,
		&m.MonthlyPayment,
		&m.TotalPaid,
		&m.AccountID,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLoanPayment(row pgx.Row) (*models.LoanPayment, error) {
	var m models.LoanPayment
	err := row.Scan(
		&m.PaymentID,
		&m.LoanID,
		&m.Amount,
		&m.PrincipalPaid,
		&m.InterestPaid,
		&m.ExtraPrincipal,
		&m.BalanceAfter,
		&m.PaymentDate,
		&m.Notes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveLoan inserts a new loan and returns it with the generated ID.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) (*domain.Loan, error) {
	m := mapping.ToModelLoan(loan)

	query := `
		INSERT INTO loans (user_id, name, loan_type, original_principal, current_balance,
			interest_rate, term_months, start_date, monthly_payment, total_paid,
			account_id, notes, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING loan_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Name,
		m.LoanType,
		m.OriginalPrincipal,
		m.CurrentBalance,
		m.InterestRate,
		m.TermMonths,
		m.StartDate,
		m.MonthlyPayment,
		m.TotalPaid,
		m.AccountID,
		m.Notes,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	saved := mapping.ToDomainLoan(m)
	return &saved, nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %d: %w", loanID, err)
	}

	loan := mapping.ToDomainLoan(*m)
	return &loan, nil
}

// FindLoanByIDForUpdate retrieves a loan within the given transaction and
// locks its row until the transaction ends. Concurrent payments against the
// same loan queue up on this lock.
func (r *PgxLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 FOR UPDATE;`

	m, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock loan %d: %w", loanID, err)
	}

	loan := mapping.ToDomainLoan(*m)
	return &loan, nil
}

// ListLoans retrieves a user's loans, newest first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC, loan_id DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for user %d: %w", userID, err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainLoan(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", rows.Err())
	}

	return loans, nil
}

// UpdateLoan updates an existing loan's editable details.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)

	query := `
		UPDATE loans
		SET name = $2, loan_type = $3, interest_rate = $4, monthly_payment = $5,
			account_id = $6, notes = $7, is_active = $8, last_updated_at = $9
		WHERE loan_id = $1;
	`
	// Principal, balance, and term change only through recorded payments.

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.Name,
		m.LoanType,
		m.InterestRate,
		m.MonthlyPayment,
		m.AccountID,
		m.Notes,
		m.IsActive,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update loan %d: %w", m.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLoan removes a loan. Payment rows cascade with it.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %d: %w", loanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordPaymentInTx appends the payment row and applies the updated loan
// state within the caller's transaction. Either both land or neither does.
func (r *PgxLoanRepository) RecordPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LoanPayment, loan domain.Loan) (*domain.LoanPayment, error) {
	m := mapping.ToModelLoanPayment(payment)

	insertQuery := `
		INSERT INTO loan_payments (loan_id, amount, principal_paid, interest_paid,
			extra_principal, balance_after, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING payment_id;
	`
	err := tx.QueryRow(ctx, insertQuery,
		m.LoanID,
		m.Amount,
		m.PrincipalPaid,
		m.InterestPaid,
		m.ExtraPrincipal,
		m.BalanceAfter,
		m.PaymentDate,
		m.Notes,
		m.CreatedAt,
	).Scan(&m.PaymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to insert payment for loan %d", m.LoanID), err)
	}

	loanModel := mapping.ToModelLoan(loan)
	updateQuery := `
		UPDATE loans
		SET current_balance = $2, total_paid = $3, is_active = $4, last_updated_at = $5
		WHERE loan_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		loanModel.LoanID,
		loanModel.CurrentBalance,
		loanModel.TotalPaid,
		loanModel.IsActive,
		loanModel.LastUpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to apply payment to loan %d", loanModel.LoanID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	saved := mapping.ToDomainLoanPayment(m)
	return &saved, nil
}

// ListLoanPayments retrieves a loan's payment history, newest first.
func (r *PgxLoanRepository) ListLoanPayments(ctx context.Context, loanID int64, limit int) ([]domain.LoanPayment, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + loanPaymentColumns + `
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY payment_date DESC, payment_id DESC
		LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, loanID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for loan %d: %w", loanID, err)
	}
	defer rows.Close()

	payments := []domain.LoanPayment{}
	for rows.Next() {
		m, err := scanLoanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainLoanPayment(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan payment rows: %w", rows.Err())
	}

	return payments, nil
}

// GetLoanSummary aggregates a user's loans for the dashboard.
func (r *PgxLoanRepository) GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error) {
	summary := &domain.LoanSummary{
		TotalBalance:        decimal.Zero,
		TotalOriginal:       decimal.Zero,
		TotalMonthlyPayment: decimal.Zero,
		LoansByType:         map[string]int{},
	}

	query := `
		SELECT loan_type, is_active, COUNT(*),
			COALESCE(SUM(current_balance) FILTER (WHERE is_active), 0),
			COALESCE(SUM(original_principal) FILTER (WHERE is_active), 0),
			COALESCE(SUM(monthly_payment) FILTER (WHERE is_active), 0)
		FROM loans
		WHERE user_id = $1
		GROUP BY loan_type, is_active;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan summary for user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var loanType string
		var isActive bool
		var count int
		var balance, original, payment decimal.Decimal
		if err := rows.Scan(&loanType, &isActive, &count, &balance, &original, &payment); err != nil {
			return nil, fmt.Errorf("failed to scan loan summary row: %w", err)
		}
		accumulateLoanSummaryRow(summary, loanType, isActive, count, balance, original, payment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan summary rows: %w", rows.Err())
	}

	return summary, nil
}

// accumulateLoanSummaryRow folds one (loan_type, is_active) group into the
// summary. Retired loans count toward TotalLoans only; the per-type breakdown
// covers active loans, matching the balance and payment totals it sits next to.
func accumulateLoanSummaryRow(summary *domain.LoanSummary, loanType string, isActive bool, count int, balance, original, payment decimal.Decimal) {
	summary.TotalLoans += count
	if isActive {
		summary.LoansByType[loanType] += count
		summary.ActiveLoans += count
		summary.TotalBalance = summary.TotalBalance.Add(balance)
		summary.TotalOriginal = summary.TotalOriginal.Add(original)
		summary.TotalMonthlyPayment = summary.TotalMonthlyPayment.Add(payment)
	}
}
