package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// LoanSvcFacade exposes loan operations to the handlers.
type LoanSvcFacade interface {
	// CreateLoan persists a new loan; the monthly payment is computed from
	// the annuity formula when the request omits it.
	CreateLoan(ctx context.Context, userID int64, req dto.CreateLoanRequest) (*domain.Loan, error)

	// GetLoanByID retrieves one of the user's loans.
	GetLoanByID(ctx context.Context, userID int64, loanID int64) (*domain.Loan, error)

	// ListLoans retrieves the user's loans.
	ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error)

	// GetLoanSummary aggregates the user's loans for the dashboard.
	GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error)

	// GetAmortizationSchedule generates the loan's full payment schedule from
	// its original terms.
	GetAmortizationSchedule(ctx context.Context, userID int64, loanID int64) (*domain.Loan, []domain.AmortizationEntry, error)

	// UpdateLoan applies the provided field updates.
	UpdateLoan(ctx context.Context, userID int64, loanID int64, req dto.UpdateLoanRequest) (*domain.Loan, error)

	// DeleteLoan removes a loan and its payment history.
	DeleteLoan(ctx context.Context, userID int64, loanID int64) error

	// RecordPayment applies one payment against the loan's live balance,
	// splitting it into interest and principal, and appends the immutable
	// payment record.
	RecordPayment(ctx context.Context, userID int64, loanID int64, req dto.RecordLoanPaymentRequest) (*domain.LoanPayment, error)

	// ListPayments retrieves a loan's payment history, newest first.
	ListPayments(ctx context.Context, userID int64, loanID int64, limit int) ([]domain.LoanPayment, error)
}
