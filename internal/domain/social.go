package entity

import (
	"time"

	"github.com/google/uuid"
)

type Follow struct {
	FollowerID uuid.UUID `db:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type Review struct {
	ID         uuid.UUID `db:"id"`
	ReviewerID uuid.UUID `db:"reviewer_id"`
	TargetID   uuid.UUID `db:"target_id"`
	Rating     int       `db:"rating"`
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

type CreateReviewInput struct {
	TargetID uuid.UUID `json:"target_id" binding:"required"`
	Rating   int       `json:"rating" binding:"required,min=1,max=5"`
	Comment  string    `json:"comment"`
}

type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
}
