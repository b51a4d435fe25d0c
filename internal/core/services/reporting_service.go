package services

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetMonthlySpending(ctx context.Context, userID int64, year int, month int) (*dto.MonthlySpendingResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.reportingRepo.GetMonthlySpending(ctx, userID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly spending")
		return nil, err
	}

	resp := dto.ToMonthlySpendingResponse(year, month, rows)
	return &resp, nil
}

func (s *reportingService) GetMonthlyTrend(ctx context.Context, userID int64, months int) (*dto.MonthlyTrendResponse, error) {
	if months <= 0 {
		months = 6
	}
	if months > 60 {
		months = 60
	}

	rows, err := s.reportingRepo.GetMonthlyTrend(ctx, userID, months)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly trend")
		return nil, err
	}

	resp := dto.ToMonthlyTrendResponse(rows)
	return &resp, nil
}

func (s *reportingService) GetNetWorth(ctx context.Context, userID int64) (*dto.NetWorthResponse, error) {
	rows, err := s.reportingRepo.GetNetWorth(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get net worth")
		return nil, err
	}

	resp := dto.ToNetWorthResponse(rows)
	return &resp, nil
}
