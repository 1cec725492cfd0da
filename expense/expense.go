package expense

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"my-expenses-backend/domain"
	"my-expenses-backend/observability"
)

// Handler exposes expense CRUD and export over HTTP. All mutations go
// through the Coordinator so the wallet stays consistent with the expense
// set.
type Handler struct {
	coordinator *Coordinator
	metrics     *observability.Metrics
	logger      *zap.Logger
}

func NewHandler(coordinator *Coordinator, metrics *observability.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		metrics:     metrics,
		logger:      logger,
	}
}

func (h *Handler) observe(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	h.metrics.ObserveExpenseOperation(operation, outcome)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := domain.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("expense request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("expense request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// HandleCreateExpense creates an expense and debits the wallet.
func (h *Handler) HandleCreateExpense(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.coordinator.Create(c.Request.Context(), userID, req)
	h.observe("create", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HandleGetExpenses lists the caller's expenses. Supports filter
// (today|week|month), sort (date|amount|category) and category query
// parameters.
func (h *Handler) HandleGetExpenses(c *gin.Context) {
	userID := c.GetString("user_id")

	params := ListParams{
		Filter:   c.Query("filter"),
		SortBy:   c.Query("sort"),
		Category: c.Query("category"),
	}

	expenses, err := h.coordinator.List(c.Request.Context(), userID, params)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// HandleGetExpense returns a single expense by id.
func (h *Handler) HandleGetExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	exp, err := h.coordinator.Get(c.Request.Context(), userID, expenseID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

// HandleUpdateExpense patches an expense, adjusting the wallet by the
// amount difference.
func (h *Handler) HandleUpdateExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.coordinator.Update(c.Request.Context(), userID, expenseID, req)
	h.observe("update", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleDeleteExpense deletes an expense and refunds its amount.
func (h *Handler) HandleDeleteExpense(c *gin.Context) {
	userID := c.GetString("user_id")
	expenseID := c.Param("id")

	resp, err := h.coordinator.Delete(c.Request.Context(), userID, expenseID)
	h.observe("delete", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
