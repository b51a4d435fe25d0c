package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/middleware"
)

// loanHandler handles HTTP requests related to loans and their payments.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/summary", h.getLoanSummary)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/schedule", h.getAmortizationSchedule)
		loans.PUT("/:id", h.updateLoan)
		loans.DELETE("/:id", h.deleteLoan)
		loans.POST("/:id/payments", h.recordPayment)
		loans.GET("/:id/payments", h.listPayments)
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create loan")
		return
	}

	logger.Info("Loan created", slog.Int64("loan_id", loan.LoanID), slog.String("monthly_payment", loan.MonthlyPayment.String()))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), userID, loanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))

	loans, err := h.loanService.ListLoans(c.Request.Context(), userID, activeOnly)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}

func (h *loanHandler) getLoanSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.loanService.GetLoanSummary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build loan summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanSummaryResponse(summary))
}

func (h *loanHandler) getAmortizationSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loan, schedule, err := h.loanService.GetAmortizationSchedule(c.Request.Context(), userID, loanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate amortization schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToAmortizationScheduleResponse(loan, schedule))
}

func (h *loanHandler) updateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), userID, loanID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update loan")
		return
	}

	logger.Info("Loan updated", slog.Int64("loan_id", loan.LoanID))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, loanID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete loan")
		return
	}

	logger.Info("Loan deleted", slog.Int64("loan_id", loanID))
	c.Status(http.StatusNoContent)
}

func (h *loanHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordLoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.loanService.RecordPayment(c.Request.Context(), userID, loanID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record loan payment")
		return
	}

	logger.Info("Loan payment recorded",
		slog.Int64("loan_id", loanID),
		slog.Int64("payment_id", payment.PaymentID),
		slog.String("principal", payment.PrincipalPaid.String()),
		slog.String("interest", payment.InterestPaid.String()),
	)
	c.JSON(http.StatusCreated, dto.ToLoanPaymentResponse(payment))
}

func (h *loanHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	payments, err := h.loanService.ListPayments(c.Request.Context(), userID, loanID, limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list loan payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToLoanPaymentResponses(payments), "total": len(payments)})
}
