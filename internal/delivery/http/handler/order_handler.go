package handler

import (
	"net/http"

	entity "swap-market/internal/domain"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	order, err := h.orderService.Checkout(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created.", "order": order})
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input entity.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(userID, orderID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated.", "order": order})
}

// POST /orders/:id/shipping
func (h *OrderHandler) InputShippingReceipt(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var input entity.ShippingReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	order, err := h.orderService.InputShippingReceipt(userID, orderID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shipping receipt recorded.", "order": order})
}

// GET /orders/:id/tracking
func (h *OrderHandler) GetOrderTracking(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, items, history, err := h.orderService.GetOrderTracking(userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items, "history": history})
}

// GET /orders?as=seller
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	orders, err := h.orderService.GetMyOrders(userID, c.Query("as") == "seller")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return uuid.Nil, false
	}
	return orderID, true
}
