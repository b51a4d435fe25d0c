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

// subscriptionHandler handles HTTP requests related to recurring subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.createSubscription)
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.GET("/:id", h.getSubscription)
		subscriptions.PUT("/:id", h.updateSubscription)
		subscriptions.DELETE("/:id", h.deleteSubscription)
		subscriptions.POST("/:id/advance", h.advanceBillingDate)
	}
}

func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create subscription")
		return
	}

	logger.Info("Subscription created", slog.Int64("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve subscription")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))

	subs, _, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID, activeOnly)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSubscriptionsResponse(subs))
}

func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), userID, subscriptionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update subscription")
		return
	}

	logger.Info("Subscription updated", slog.Int64("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), userID, subscriptionID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete subscription")
		return
	}

	logger.Info("Subscription deleted", slog.Int64("subscription_id", subscriptionID))
	c.Status(http.StatusNoContent)
}

func (h *subscriptionHandler) advanceBillingDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.AdvanceBillingDate(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to advance billing date")
		return
	}

	logger.Info("Subscription billing date advanced", slog.Int64("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}
