package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService implements the balance ledger. Account balances are a
// running sum of transaction effects: creating a transaction applies its
// signed amount, editing applies the difference, deleting applies the exact
// inverse. A full create-then-delete cycle therefore restores balances
// bit for bit.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateAccount checks that the account exists and belongs to the user.
func (s *transactionService) validateAccount(ctx context.Context, userID int64, accountID int64) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

// validateCategory checks that the category exists and belongs to the user.
func (s *transactionService) validateCategory(ctx context.Context, userID int64, categoryID int64) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.validateAccount(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if req.TransferToAccountID != nil {
		if *req.TransferToAccountID == req.AccountID {
			return nil, apperrors.NewValidationError("transfer destination must differ from source account")
		}
		if err := s.validateAccount(ctx, userID, *req.TransferToAccountID); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid transaction date")
	}

	now := time.Now()
	txn := domain.Transaction{
		UserID:              userID,
		AccountID:           req.AccountID,
		CategoryID:          req.CategoryID,
		TransferToAccountID: req.TransferToAccountID,
		Amount:              req.Amount,
		Date:                date,
		Description:         req.Description,
		Payee:               req.Payee,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceEffect(txn, false))
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.Int64("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// balanceEffect computes the balance deltas a transaction applies. With
// invert it yields the exact inverse, used on delete.
func balanceEffect(txn domain.Transaction, invert bool) map[int64]decimal.Decimal {
	amount := txn.Amount
	if invert {
		amount = amount.Neg()
	}
	changes := map[int64]decimal.Decimal{txn.AccountID: amount}
	if txn.TransferToAccountID != nil {
		changes[*txn.TransferToAccountID] = amount.Neg()
	}
	return changes
}

// findOwnedTransaction fetches the transaction and hides other users'
// transactions behind ErrNotFound.
func (s *transactionService) findOwnedTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, int, error) {
	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		MinAmount:  params.MinAmount,
		MaxAmount:  params.MaxAmount,
		Search:     params.Search,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.StartDate != nil {
		start, err := dto.ParseDate(*params.StartDate)
		if err != nil {
			return nil, 0, apperrors.NewValidationError("invalid start date")
		}
		filter.StartDate = &start
	}
	if params.EndDate != nil {
		end, err := dto.ParseDate(*params.EndDate)
		if err != nil {
			return nil, 0, apperrors.NewValidationError("invalid end date")
		}
		filter.EndDate = &end
	}

	return s.transactionRepo.ListTransactions(ctx, userID, filter)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	oldAmount := txn.Amount

	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid transaction date")
		}
		txn.Date = date
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		txn.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Payee != nil {
		txn.Payee = *req.Payee
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	txn.LastUpdatedAt = time.Now()

	// Only the difference between the new and old amount moves balances, so
	// any sequence of edits lands on the same final balance as a single edit
	// to the same value.
	delta := txn.Amount.Sub(oldAmount)
	changes := map[int64]decimal.Decimal{}
	if !delta.IsZero() {
		changes[txn.AccountID] = delta
		if txn.TransferToAccountID != nil {
			changes[*txn.TransferToAccountID] = delta.Neg()
		}
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn, changes); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error {
	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, balanceEffect(*txn, true), time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", transactionID))
	return nil
}
