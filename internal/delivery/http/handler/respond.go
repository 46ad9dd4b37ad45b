package handler

import (
	"errors"
	"net/http"

	service "swap-market/internal/service/postgresql"
	repository "swap-market/internal/repository/postgresql"

	"github.com/gin-gonic/gin"
)

// statusForError maps domain errors to HTTP codes so clients can tell
// "not found" from "not allowed" from "wrong state".
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrBarterNotFound),
		errors.Is(err, service.ErrTargetItemNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotBarterParty),
		errors.Is(err, service.ErrRequesterOnlyCancel),
		errors.Is(err, service.ErrNotItemOwner),
		errors.Is(err, service.ErrNotOrderParty):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidBarterStatus),
		errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrAlreadyFollowing):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoOfferedItems),
		errors.Is(err, service.ErrOwnerMismatch),
		errors.Is(err, service.ErrSelfBarter),
		errors.Is(err, service.ErrInvalidBarterRole),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMultiSellerCart),
		errors.Is(err, service.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrItemNotPurchasable),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrSelfReview),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrInactiveAccount):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
