package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a best-effort user-facing message stored in Mongo.
// For barter transitions the payload carries the barter id, the target item
// and the acting party so the client can render a deep link.
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Type         string             `bson:"type" json:"type"` // barter_offer, barter_status, order_status, new_follower, new_review
	Title        string             `bson:"title" json:"title"`
	Message      string             `bson:"message" json:"message"`
	RelatedID    string             `bson:"related_id,omitempty" json:"related_id,omitempty"`
	ItemID       string             `bson:"item_id,omitempty" json:"item_id,omitempty"`
	ItemName     string             `bson:"item_name,omitempty" json:"item_name,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	ActingUserID string             `bson:"acting_user_id,omitempty" json:"acting_user_id,omitempty"`
	IsRead       bool               `bson:"is_read" json:"is_read"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
