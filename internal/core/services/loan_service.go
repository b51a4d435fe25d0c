package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/utils/finance"
	"github.com/shopspring/decimal"
)

// retirementThreshold is the balance below which a loan counts as paid off.
var retirementThreshold = decimal.RequireFromString("0.01")

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	loanRepo    portsrepo.LoanRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
	}
}

// Ensure loanService implements the LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) CreateLoan(ctx context.Context, userID int64, req dto.CreateLoanRequest) (*domain.Loan, error) {
	if req.OriginalPrincipal.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("loan principal must be positive")
	}
	if req.InterestRate.IsNegative() {
		return nil, apperrors.NewValidationError("interest rate must not be negative")
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid loan start date")
	}

	if req.AccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID)
		if err != nil {
			return nil, err
		}
		if account.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
	}

	monthlyPayment := finance.ComputeMonthlyPayment(req.OriginalPrincipal, req.InterestRate, req.TermMonths)
	if req.MonthlyPayment != nil {
		if req.MonthlyPayment.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("monthly payment must be positive")
		}
		monthlyPayment = *req.MonthlyPayment
	}

	now := time.Now()
	loan := domain.Loan{
		UserID:            userID,
		Name:              req.Name,
		LoanType:          req.LoanType,
		OriginalPrincipal: req.OriginalPrincipal,
		CurrentBalance:    req.OriginalPrincipal,
		InterestRate:      req.InterestRate,
		TermMonths:        req.TermMonths,
		StartDate:         startDate,
		MonthlyPayment:    monthlyPayment.Round(2),
		TotalPaid:         decimal.Zero,
		AccountID:         req.AccountID,
		Notes:             req.Notes,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.loanRepo.SaveLoan(ctx, loan)
	if err != nil {
		s.LogError(ctx, err, "Failed to save loan", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan created",
		slog.Int64("loan_id", saved.LoanID),
		slog.String("monthly_payment", saved.MonthlyPayment.String()))
	return saved, nil
}

// findOwnedLoan fetches the loan and hides other users' loans behind
// ErrNotFound.
func (s *loanService) findOwnedLoan(ctx context.Context, userID int64, loanID int64) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return loan, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, userID int64, loanID int64) (*domain.Loan, error) {
	return s.findOwnedLoan(ctx, userID, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, userID int64, activeOnly bool) ([]domain.Loan, error) {
	return s.loanRepo.ListLoans(ctx, userID, activeOnly)
}

func (s *loanService) GetLoanSummary(ctx context.Context, userID int64) (*domain.LoanSummary, error) {
	return s.loanRepo.GetLoanSummary(ctx, userID)
}

// GetAmortizationSchedule generates the schedule from the loan's original
// terms. Recorded payments do not alter the projection; the schedule is the
// contractual plan, not the live history.
func (s *loanService) GetAmortizationSchedule(ctx context.Context, userID int64, loanID int64) (*domain.Loan, []domain.AmortizationEntry, error) {
	loan, err := s.findOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return nil, nil, err
	}

	schedule := finance.GenerateSchedule(loan.OriginalPrincipal, loan.InterestRate, loan.TermMonths, loan.StartDate, &loan.MonthlyPayment)
	return loan, schedule, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, userID int64, loanID int64, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	loan, err := s.findOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loan.Name = *req.Name
	}
	if req.LoanType != nil {
		loan.LoanType = *req.LoanType
	}
	if req.InterestRate != nil {
		if req.InterestRate.IsNegative() {
			return nil, apperrors.NewValidationError("interest rate must not be negative")
		}
		loan.InterestRate = *req.InterestRate
	}
	if req.AccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID)
		if err != nil {
			return nil, err
		}
		if account.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		loan.AccountID = req.AccountID
	}
	if req.Notes != nil {
		loan.Notes = *req.Notes
	}
	if req.IsActive != nil {
		loan.IsActive = *req.IsActive
	}
	loan.LastUpdatedAt = time.Now()

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to update loan", slog.Int64("loan_id", loanID))
		return nil, err
	}

	return loan, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, userID int64, loanID int64) error {
	if _, err := s.findOwnedLoan(ctx, userID, loanID); err != nil {
		return err
	}

	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan", slog.Int64("loan_id", loanID))
		return err
	}

	s.LogInfo(ctx, "Loan deleted", slog.Int64("loan_id", loanID))
	return nil
}

// RecordPayment applies one payment against the loan's live balance.
//
// Interest accrues on the current balance at one month's worth of the annual
// rate, regardless of when the previous payment landed. The remainder of the
// payment, plus any extra principal, reduces the balance. A payment smaller
// than the interest due records the full interest and a negative principal;
// the shortfall grows the balance. A payment larger than needed to retire the
// loan is clamped: principal is capped at the remaining balance and the
// interest portion absorbs the rest. The split always sums to the amount
// actually paid.
//
// The loan row is read and locked inside the same database transaction that
// writes the payment, so concurrent payments against one loan serialize.
func (s *loanService) RecordPayment(ctx context.Context, userID int64, loanID int64, req dto.RecordLoanPaymentRequest) (*domain.LoanPayment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if req.ExtraPrincipal.IsNegative() {
		return nil, apperrors.NewValidationError("extra principal must not be negative")
	}

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid payment date")
	}

	tx, err := s.loanRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.loanRepo.Rollback(ctx, tx)

	loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, tx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !loan.IsActive {
		return nil, apperrors.NewValidationError("loan is already paid off")
	}

	totalAmount := req.Amount.Add(req.ExtraPrincipal)

	interest := loan.CurrentBalance.Mul(finance.MonthlyRate(loan.InterestRate))
	totalPrincipal := req.Amount.Sub(interest).Add(req.ExtraPrincipal)

	// Overpayment clamp: never take more principal than is owed, and keep
	// interest + principal equal to the amount paid.
	if totalPrincipal.GreaterThan(loan.CurrentBalance) {
		totalPrincipal = loan.CurrentBalance
		interest = totalAmount.Sub(totalPrincipal)
	}

	newBalance := loan.CurrentBalance.Sub(totalPrincipal)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	now := time.Now()
	loan.CurrentBalance = newBalance.Round(2)
	loan.TotalPaid = loan.TotalPaid.Add(totalAmount).Round(2)
	loan.IsActive = loan.CurrentBalance.GreaterThan(retirementThreshold)
	loan.LastUpdatedAt = now

	payment := domain.LoanPayment{
		LoanID:         loanID,
		Amount:         totalAmount.Round(2),
		PrincipalPaid:  totalPrincipal.Round(2),
		InterestPaid:   interest.Round(2),
		ExtraPrincipal: req.ExtraPrincipal.Round(2),
		BalanceAfter:   loan.CurrentBalance,
		PaymentDate:    paymentDate,
		Notes:          req.Notes,
		CreatedAt:      now,
	}

	saved, err := s.loanRepo.RecordPaymentInTx(ctx, tx, payment, *loan)
	if err != nil {
		s.LogError(ctx, err, "Failed to record loan payment", slog.Int64("loan_id", loanID))
		return nil, err
	}
	if err := s.loanRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Loan payment recorded",
		slog.Int64("loan_id", loanID),
		slog.String("principal", saved.PrincipalPaid.String()),
		slog.String("interest", saved.InterestPaid.String()),
		slog.String("balance_after", saved.BalanceAfter.String()))
	return saved, nil
}

func (s *loanService) ListPayments(ctx context.Context, userID int64, loanID int64, limit int) ([]domain.LoanPayment, error) {
	if _, err := s.findOwnedLoan(ctx, userID, loanID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoanPayments(ctx, loanID, limit)
}
