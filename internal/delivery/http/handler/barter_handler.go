package handler

import (
	"net/http"
	"strconv"

	entity "swap-market/internal/domain"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BarterHandler struct {
	barterService *service.BarterService
}

func NewBarterHandler(barterService *service.BarterService) *BarterHandler {
	return &BarterHandler{barterService: barterService}
}

// @Summary      Create Barter Offer
// @Description  Opens a barter on another user's listing with an initial set of offered items.
// @Tags         Barter
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.BarterOffer
// @Failure      400  {object}  map[string]interface{}
// @Router       /barters [post]
func (h *BarterHandler) CreateBarterOffer(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CreateBarterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	barter, err := h.barterService.CreateBarterOffer(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Barter offer created. Waiting for the owner's response.",
		"barter":  barter,
	})
}

// POST /barters/:id/counter
func (h *BarterHandler) CreateCounterOffer(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	var input entity.CounterOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	barter, err := h.barterService.CreateCounterOffer(barterID, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Counter offer placed.", "barter": barter})
}

// POST /barters/:id/accept
func (h *BarterHandler) AcceptBarterOffer(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	barter, err := h.barterService.AcceptBarterOffer(barterID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barter accepted.", "barter": barter})
}

// POST /barters/:id/reject
func (h *BarterHandler) RejectBarterOffer(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	var input entity.BarterDecisionInput
	_ = c.ShouldBindJSON(&input) // reason is optional

	barter, err := h.barterService.RejectBarterOffer(barterID, userID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barter rejected.", "barter": barter})
}

// POST /barters/:id/cancel
func (h *BarterHandler) CancelBarterOffer(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	var input entity.BarterDecisionInput
	_ = c.ShouldBindJSON(&input)

	barter, err := h.barterService.CancelBarterOffer(barterID, userID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barter cancelled.", "barter": barter})
}

// POST /barters/:id/complete
func (h *BarterHandler) CompleteBarterExchange(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	barter, err := h.barterService.CompleteBarterExchange(barterID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barter exchange completed.", "barter": barter})
}

// GET /barters/:id
func (h *BarterHandler) GetBarter(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	barter, err := h.barterService.GetBarter(barterID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"barter": barter, "offered_items": barter.OfferedItems()})
}

// GET /barters/:id/history
func (h *BarterHandler) GetBarterStatusHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	barterID, ok := parseBarterID(c)
	if !ok {
		return
	}

	history, err := h.barterService.GetBarterStatusHistory(barterID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// @Summary      List My Barters
// @Description  Returns the user's barters by role (received, sent or all), newest first.
// @Tags         Barter
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /barters [get]
func (h *BarterHandler) GetUserBarters(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	role := c.DefaultQuery("role", entity.BarterRoleAll)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	barters, err := h.barterService.GetUserBarters(userID, role, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"barters": barters})
}

func parseBarterID(c *gin.Context) (uuid.UUID, bool) {
	barterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barter id"})
		return uuid.Nil, false
	}
	return barterID, true
}
