package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uuid.UUID `db:"id"`
	BuyerID         uuid.UUID `db:"buyer_id"`
	SellerID        uuid.UUID `db:"seller_id"`
	Status          string    `db:"status"`
	TotalPrice      float64   `db:"total_price"`
	ShippingAddress string    `db:"shipping_address"`
	ShippingCourier string    `db:"shipping_courier"`
	ShippingReceipt string    `db:"shipping_receipt"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID `db:"id"`
	OrderID   uuid.UUID `db:"order_id"`
	ItemID    uuid.UUID `db:"item_id"`
	ItemName  string    `db:"item_name"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}

type CheckoutInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingCourier string `json:"shipping_courier" binding:"required"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type ShippingReceiptInput struct {
	ShippingCourier string `json:"shipping_courier" binding:"required"`
	ShippingReceipt string `json:"shipping_receipt" binding:"required"`
}
