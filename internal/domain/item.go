package entity

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID             uuid.UUID `db:"id"`
	SellerID       uuid.UUID `db:"seller_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Price          float64   `db:"price"`
	EstimatedValue float64   `db:"estimated_value"`
	Stock          int       `db:"stock"`
	Condition      string    `db:"condition"`
	Category       string    `db:"category"`
	ImageURL       string    `db:"image_url"`
	Status         string    `db:"status"` // active, inactive, deleted
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type CreateItemInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" binding:"min=0"`
	EstimatedValue float64 `json:"estimated_value" binding:"min=0"`
	Stock          int     `json:"stock" binding:"min=0"`
	Condition      string  `json:"condition" binding:"required"`
	Category       string  `json:"category"`
	ImageURL       string  `json:"image_url"`
}

type UpdateItemInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	EstimatedValue *float64 `json:"estimated_value"`
	Stock          *int     `json:"stock"`
	Condition      string   `json:"condition"`
	Category       string   `json:"category"`
	ImageURL       string   `json:"image_url"`
	Status         string   `json:"status"`
}

type ItemFilter struct {
	Keyword  string  `form:"keyword"`
	Category string  `form:"category"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Limit    int     `form:"limit"`
	Offset   int     `form:"offset"`
}
