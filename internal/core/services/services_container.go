package services

import (
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Loan = NewLoanService(repos.LoanRepo, repos.AccountRepo)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// Auth depends on the category service for default-category seeding.
	container.Auth = NewAuthService(repos.UserRepo, container.Category, cfg)

	return container
}
