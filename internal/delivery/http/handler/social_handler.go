package handler

import (
	"net/http"

	entity "swap-market/internal/domain"
	service "swap-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// POST /users/:id/follow
func (h *SocialHandler) Follow(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.socialService.Follow(userID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following."})
}

// DELETE /users/:id/follow
func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.socialService.Unfollow(userID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed."})
}

// GET /users/:id/followers
func (h *SocialHandler) GetFollowers(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	followers, err := h.socialService.GetFollowers(targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

// GET /users/:id/following
func (h *SocialHandler) GetFollowing(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	following, err := h.socialService.GetFollowing(targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// POST /reviews
func (h *SocialHandler) CreateReview(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	review, err := h.socialService.CreateReview(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted.", "review": review})
}

// GET /users/:id/reviews
func (h *SocialHandler) GetUserReviews(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	summary, err := h.socialService.GetUserReviews(targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return targetID, true
}
