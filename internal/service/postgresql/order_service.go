package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	entity "swap-market/internal/domain"
	mongorepo "swap-market/internal/repository/mongodb"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOrderParty      = errors.New("unauthorized: access denied")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMultiSellerCart    = errors.New("multi-seller orders are not supported in a single checkout")
	ErrInvalidOrderStatus = errors.New("invalid status value")
)

var validOrderStatuses = map[string]bool{
	entity.OrderStatusPending:   true,
	entity.OrderStatusPaid:      true,
	entity.OrderStatusShipped:   true,
	entity.OrderStatusCompleted: true,
	entity.OrderStatusCancelled: true,
}

type OrderService struct {
	orderRepo repo.OrderRepository
	cartRepo  repo.CartRepository
	itemRepo  repo.ItemRepository
	logRepo   mongorepo.LogRepository
}

func NewOrderService(orderRepo repo.OrderRepository, cartRepo repo.CartRepository, itemRepo repo.ItemRepository, logRepo mongorepo.LogRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		itemRepo:  itemRepo,
		logRepo:   logRepo,
	}
}

// Checkout turns the buyer's cart into an order. All lines must come from one
// seller; stock is validated again inside the order transaction.
func (s *OrderService) Checkout(buyerID uuid.UUID, input entity.CheckoutInput) (*entity.Order, error) {
	cartItems, err := s.cartRepo.GetCartItems(buyerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var sellerID uuid.UUID
	var totalPrice float64
	orderID := uuid.New()
	orderItems := make([]entity.OrderItem, 0, len(cartItems))

	for _, cartItem := range cartItems {
		item, err := s.itemRepo.GetItemByID(cartItem.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.Status != "active" || item.Stock < cartItem.Quantity {
			return nil, ErrItemNotPurchasable
		}
		if sellerID == uuid.Nil {
			sellerID = item.SellerID
		} else if sellerID != item.SellerID {
			return nil, ErrMultiSellerCart
		}

		orderItems = append(orderItems, entity.OrderItem{
			ID:       uuid.New(),
			OrderID:  orderID,
			ItemID:   cartItem.ItemID,
			ItemName: cartItem.ItemName,
			Quantity: cartItem.Quantity,
			Price:    cartItem.UnitPrice,
		})
		totalPrice += cartItem.UnitPrice * float64(cartItem.Quantity)
	}

	order := &entity.Order{
		ID:              orderID,
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Status:          entity.OrderStatusPending,
		TotalPrice:      totalPrice,
		ShippingAddress: input.ShippingAddress,
		ShippingCourier: input.ShippingCourier,
	}
	if err := s.orderRepo.CreateOrderTransaction(order, orderItems); err != nil {
		return nil, err
	}

	s.notifyUser(sellerID, "New Order Received",
		fmt.Sprintf("You received a new order #%s totalling %.2f.", shortID(order.ID), order.TotalPrice),
		"order_status", order.ID)

	return order, nil
}

// UpdateOrderStatus lets the seller move the order through its lifecycle; the
// buyer may only cancel while the order is still pending.
func (s *OrderService) UpdateOrderStatus(userID, orderID uuid.UUID, status string) (*entity.Order, error) {
	if !validOrderStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	isSeller := order.SellerID == userID
	isBuyerCancel := order.BuyerID == userID && status == entity.OrderStatusCancelled && order.Status == entity.OrderStatusPending
	if !isSeller && !isBuyerCancel {
		return nil, ErrNotOrderParty
	}

	oldStatus := order.Status
	if err := s.orderRepo.UpdateOrderStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.saveOrderHistory(order, oldStatus, userID)

	recipient := order.BuyerID
	if userID == order.BuyerID {
		recipient = order.SellerID
	}
	s.notifyUser(recipient, "Order Status Changed",
		fmt.Sprintf("Order #%s is now %s.", shortID(orderID), status),
		"order_status", order.ID)

	return order, nil
}

func (s *OrderService) InputShippingReceipt(userID, orderID uuid.UUID, input entity.ShippingReceiptInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.SellerID != userID {
		return nil, ErrNotOrderParty
	}

	oldStatus := order.Status
	if err := s.orderRepo.UpdateOrderShipment(orderID, input.ShippingCourier, input.ShippingReceipt); err != nil {
		return nil, err
	}
	order.ShippingCourier = input.ShippingCourier
	order.ShippingReceipt = input.ShippingReceipt
	order.Status = entity.OrderStatusShipped

	s.saveOrderHistory(order, oldStatus, userID)
	s.notifyUser(order.BuyerID, "Order Shipped",
		fmt.Sprintf("Order #%s was shipped, receipt %s.", shortID(orderID), input.ShippingReceipt),
		"order_status", order.ID)

	return order, nil
}

func (s *OrderService) GetOrderTracking(userID, orderID uuid.UUID) (*entity.Order, []entity.OrderItem, []entity.HistoryStatus, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, nil, nil, err
	}
	if order == nil {
		return nil, nil, nil, ErrOrderNotFound
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, nil, nil, ErrNotOrderParty
	}

	items, err := s.orderRepo.GetOrderItems(orderID)
	if err != nil {
		return nil, nil, nil, err
	}

	history, err := s.logRepo.GetHistoryByRelatedID(orderID.String())
	if err != nil {
		log.Printf("Warning: failed to load status history for order %s: %v", orderID.String(), err)
		history = nil
	}

	return order, items, history, nil
}

func (s *OrderService) GetMyOrders(userID uuid.UUID, asSeller bool) ([]entity.Order, error) {
	if asSeller {
		return s.orderRepo.GetOrdersBySellerID(userID)
	}
	return s.orderRepo.GetOrdersByBuyerID(userID)
}

func (s *OrderService) notifyUser(userID uuid.UUID, title, message, notiType string, relatedID uuid.UUID) {
	noti := &entity.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID.String(),
		Type:      notiType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID.String(),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.logRepo.SaveNotification(noti); err != nil {
		log.Printf("Warning: failed to save notification for user %s: %v", userID.String(), err)
	}
}

func (s *OrderService) saveOrderHistory(order *entity.Order, oldStatus string, changedBy uuid.UUID) {
	history := &entity.HistoryStatus{
		ID:          primitive.NewObjectID(),
		RelatedID:   order.ID.String(),
		RelatedType: "order",
		OldStatus:   oldStatus,
		NewStatus:   order.Status,
		ChangedBy:   changedBy.String(),
		Timestamp:   time.Now(),
	}
	if err := s.logRepo.SaveHistoryStatus(history); err != nil {
		log.Printf("Warning: failed to save history status for order %s: %v", order.ID.String(), err)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
