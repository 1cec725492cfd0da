package wallet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"my-expenses-backend/domain"
)

// Handler exposes the wallet operations over HTTP. The authenticated user
// id is taken from the gin context set by the auth middleware.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := domain.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("wallet request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("wallet request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// HandleInitializeWallet creates the caller's wallet if absent. Idempotent.
func (h *Handler) HandleInitializeWallet(c *gin.Context) {
	userID := c.GetString("user_id")

	w, err := h.service.Initialize(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleGetWalletDetails returns balance, budget, rollups and ledger.
func (h *Handler) HandleGetWalletDetails(c *gin.Context) {
	userID := c.GetString("user_id")

	w, err := h.service.Details(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleAddFunds credits the wallet.
func (h *Handler) HandleAddFunds(c *gin.Context) {
	userID := c.GetString("user_id")

	var req AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.service.AddFunds(c.Request.Context(), userID, req.Amount, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleDeductFunds debits the wallet, rejecting insufficient balances.
func (h *Handler) HandleDeductFunds(c *gin.Context) {
	userID := c.GetString("user_id")

	var req DeductFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.service.DeductFunds(c.Request.Context(), userID, req.Amount, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleGetTransactionHistory returns the ledger, newest first.
func (h *Handler) HandleGetTransactionHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	entries, err := h.service.Transactions(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// HandleSetMonthlyBudget sets the budget for the current month.
func (h *Handler) HandleSetMonthlyBudget(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SetMonthlyBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.service.SetMonthlyBudget(c.Request.Context(), userID, req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleGetMonthlyStats returns the current month's spend/budget snapshot.
func (h *Handler) HandleGetMonthlyStats(c *gin.Context) {
	userID := c.GetString("user_id")

	stats, err := h.service.MonthlyStats(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HandleSetCategoryLimit upserts a per-category budget limit.
func (h *Handler) HandleSetCategoryLimit(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SetCategoryLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.service.SetCategoryLimit(c.Request.Context(), userID, req.Category, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// HandleGetSpendingAlerts evaluates spending alerts for the caller.
func (h *Handler) HandleGetSpendingAlerts(c *gin.Context) {
	userID := c.GetString("user_id")

	alerts, err := h.service.SpendingAlerts(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
