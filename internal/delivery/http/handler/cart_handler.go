package handler

import (
	"net/http"

	entity "swap-market/internal/domain"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.AddCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	cartItem, err := h.cartService.AddToCart(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart.", "cart_item": cartItem})
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var input entity.UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	if err := h.cartService.UpdateQuantity(userID, itemID, input.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated."})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveFromCart(userID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart."})
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	items, total, err := h.cartService.GetCart(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
