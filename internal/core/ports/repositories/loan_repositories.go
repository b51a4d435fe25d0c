package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a specific loan.
	FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error)

	// ListLoans retrieves a user's loans, newest first. activeOnly limits the
	// result to loans whose balance is not yet retired.
	ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error)

	// GetLoanSummary aggregates a user's loans for the dashboard.
	GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error)

	// ListLoanPayments retrieves the payment history of a loan, newest first.
	ListLoanPayments(ctx context.Context, loanID int64, limit int) ([]domain.LoanPayment, error)
}

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoan persists a new loan and returns it with its assigned ID.
	SaveLoan(ctx context.Context, loan domain.Loan) (*domain.Loan, error)

	// UpdateLoan updates an existing loan's editable details.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// DeleteLoan removes a loan and its payment history.
	DeleteLoan(ctx context.Context, loanID int64) error
}

// LoanPaymentSupport defines the operations the loan service uses to apply a
// payment against the live loan row. The service computes the payment split
// from a row locked FOR UPDATE so concurrent payments against the same loan
// serialize instead of overwriting each other.
type LoanPaymentSupport interface {
	TransactionManager

	// FindLoanByIDForUpdate retrieves a loan within the given transaction
	// and locks its row until the transaction ends.
	FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*domain.Loan, error)

	// RecordPaymentInTx appends the immutable payment row and applies the
	// updated loan state (balance, total paid, active flag) within the given
	// transaction. Returns the stored payment with its assigned ID.
	RecordPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.LoanPayment, loan domain.Loan) (*domain.LoanPayment, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanPaymentSupport
}
