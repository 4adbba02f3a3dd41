package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zayrajewels/zayra-golang/internal/fulfillment"
	"github.com/zayrajewels/zayra-golang/internal/models"
)

//
// --- Order Handlers (Customer) ---
//

// CreateOrder is the handler for POST /v1/orders.
// The body carries the validated cart snapshot: items with their
// price-at-add-to-cart, the shipping address and the payment method.
func (h *Handlers) CreateOrder(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input fulfillment.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order, err := h.Fulfillment.PlaceOrder(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// GetMyOrders is the handler for GET /v1/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	orderList, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderList})
}

// GetOrderDetails is the handler for GET /v1/orders/:id.
// Ownership is enforced: customers only see their own orders.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.Orders.GetByIDForUser(c.Request.Context(), orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

//
// --- Order Handlers (Admin) ---
//

// GetAllOrders is the handler for GET /v1/admin/orders.
// Accepts an optional ?status= filter.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + status})
		return
	}

	orderList, err := h.Orders.ListAll(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderList})
}

// UpdateOrderStatusInput is the JSON body for a manual status change.
// Force bypasses the lifecycle table for exceptional cases.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,orderstatus"`
	Force  bool   `json:"force"`
}

// UpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id/status.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), orderID, models.OrderStatus(input.Status), input.Force)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GetAdminStats is the handler for GET /v1/admin/dashboard-stats.
func (h *Handlers) GetAdminStats(c *gin.Context) {
	stats, err := h.Orders.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
