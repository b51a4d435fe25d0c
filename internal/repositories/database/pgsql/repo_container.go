package pgsql

import (
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	loanRepo := newPgxLoanRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	subscriptionRepo := newPgxSubscriptionRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		LoanRepo:         loanRepo,
		CategoryRepo:     categoryRepo,
		SubscriptionRepo: subscriptionRepo,
		BudgetRepo:       budgetRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}
