package handler

import (
	"net/http"

	entity "swap-market/internal/domain"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	item, err := h.itemService.CreateItem(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item listed.", "item": item})
}

// PUT /items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var input entity.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	item, err := h.itemService.UpdateItem(userID, itemID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated.", "item": item})
}

// DELETE /items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(userID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed."})
}

// GET /items/my
func (h *ItemHandler) GetMyItems(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	items, err := h.itemService.GetMyItems(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /market/items
func (h *ItemHandler) GetMarketplaceItems(c *gin.Context) {
	var filter entity.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter", "detail": err.Error()})
		return
	}

	items, err := h.itemService.GetMarketplaceItems(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /market/items/:id
func (h *ItemHandler) GetItemDetail(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetItemDetail(itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func parseItemID(c *gin.Context) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return uuid.Nil, false
	}
	return itemID, true
}
