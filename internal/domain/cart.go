package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem snapshots the item name and unit price at the moment it was added.
type CartItem struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	ItemID    uuid.UUID `db:"item_id"`
	ItemName  string    `db:"item_name"`
	UnitPrice float64   `db:"unit_price"`
	Quantity  int       `db:"quantity"`
	AddedAt   time.Time `db:"added_at"`
}

type AddCartItemInput struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
