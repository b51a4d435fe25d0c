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
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now()

	account := domain.Account{
		UserID:      userID,
		Name:        req.Name,
		Kind:        req.Kind,
		Balance:     req.InitialBalance,
		Institution: req.Institution,
		Notes:       req.Notes,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := applyAccountDetails(&account, req.CreditCard, req.LoanDetail, req.Investment); err != nil {
		s.LogError(ctx, err, "Invalid account detail payload", slog.String("kind", string(req.Kind)))
		return nil, err
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.Int64("account_id", saved.AccountID),
		slog.String("kind", string(saved.Kind)))
	return saved, nil
}

// applyAccountDetails attaches the detail payload matching the account's
// kind. A payload for a different kind is a validation error.
func applyAccountDetails(account *domain.Account, cc *dto.CreditCardDetailsDTO, loan *dto.LoanAccountDetailsDTO, inv *dto.InvestmentDetailsDTO) error {
	switch account.Kind {
	case domain.AccountCreditCard:
		if cc != nil {
			account.CreditCard = &domain.CreditCardDetails{
				CreditLimit:     cc.CreditLimit,
				InterestRate:    cc.InterestRate,
				BillingCycleDay: cc.BillingCycleDay,
			}
		}
		if loan != nil || inv != nil {
			return apperrors.NewValidationError("detail payload does not match account kind")
		}
	case domain.AccountLoan:
		if loan != nil {
			detail := &domain.LoanAccountDetails{
				InterestRate: loan.InterestRate,
				TermMonths:   loan.TermMonths,
			}
			if loan.StartDate != "" {
				startDate, err := dto.ParseDate(loan.StartDate)
				if err != nil {
					return apperrors.NewValidationError("invalid loan start date")
				}
				detail.StartDate = startDate
			}
			account.LoanDetail = detail
		}
		if cc != nil || inv != nil {
			return apperrors.NewValidationError("detail payload does not match account kind")
		}
	case domain.AccountInvestment:
		if inv != nil {
			account.Investment = &domain.InvestmentDetails{InitialInvestment: inv.InitialInvestment}
		}
		if cc != nil || loan != nil {
			return apperrors.NewValidationError("detail payload does not match account kind")
		}
	default: // BANK carries no detail payload
		if cc != nil || loan != nil || inv != nil {
			return apperrors.NewValidationError("detail payload does not match account kind")
		}
	}
	return nil
}

// findOwnedAccount fetches the account and hides other users' accounts
// behind ErrNotFound.
func (s *accountService) findOwnedAccount(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, userID, activeOnly)
}

func (s *accountService) UpdateAccount(ctx context.Context, userID int64, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Institution != nil {
		account.Institution = *req.Institution
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Balance != nil {
		// Direct balance edit: the new value simply becomes the balance.
		account.Balance = *req.Balance
	}
	if req.CreditCard != nil || req.LoanDetail != nil || req.Investment != nil {
		account.CreditCard = nil
		account.LoanDetail = nil
		account.Investment = nil
		if err := applyAccountDetails(account, req.CreditCard, req.LoanDetail, req.Investment); err != nil {
			return nil, err
		}
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID int64, accountID int64) error {
	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	return nil
}
