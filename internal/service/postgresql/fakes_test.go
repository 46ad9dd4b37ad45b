package service

import (
	"database/sql"
	"sort"

	entity "swap-market/internal/domain"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. The barter fake enforces the
// same compare-and-swap semantics as the SQL implementation so the services
// are tested against realistic versioning behavior.

type fakeBarterRepo struct {
	barters map[uuid.UUID]*entity.BarterOffer
}

func newFakeBarterRepo() *fakeBarterRepo {
	return &fakeBarterRepo{barters: make(map[uuid.UUID]*entity.BarterOffer)}
}

func copyBarter(barter *entity.BarterOffer) *entity.BarterOffer {
	clone := *barter
	clone.Negotiations = append([]entity.Negotiation(nil), barter.Negotiations...)
	return &clone
}

func (f *fakeBarterRepo) CreateBarter(barter *entity.BarterOffer) error {
	f.barters[barter.ID] = copyBarter(barter)
	return nil
}

func (f *fakeBarterRepo) GetBarterByID(barterID uuid.UUID) (*entity.BarterOffer, error) {
	barter, ok := f.barters[barterID]
	if !ok {
		return nil, nil
	}
	return copyBarter(barter), nil
}

func (f *fakeBarterRepo) UpdateBarter(barter *entity.BarterOffer) error {
	stored, ok := f.barters[barter.ID]
	if !ok || stored.Version != barter.Version {
		return repo.ErrVersionConflict
	}
	clone := copyBarter(barter)
	clone.Version++
	f.barters[barter.ID] = clone
	barter.Version++
	return nil
}

func (f *fakeBarterRepo) GetBartersByOwnerID(ownerID uuid.UUID, limit int) ([]entity.BarterOffer, error) {
	return f.list(func(b *entity.BarterOffer) bool { return b.OwnerID == ownerID }, limit), nil
}

func (f *fakeBarterRepo) GetBartersByRequesterID(requesterID uuid.UUID, limit int) ([]entity.BarterOffer, error) {
	return f.list(func(b *entity.BarterOffer) bool { return b.RequesterID == requesterID }, limit), nil
}

func (f *fakeBarterRepo) list(match func(*entity.BarterOffer) bool, limit int) []entity.BarterOffer {
	var result []entity.BarterOffer
	for _, barter := range f.barters {
		if match(barter) {
			result = append(result, *copyBarter(barter))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

type fakeItemRepo struct {
	items map[uuid.UUID]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*entity.Item)}
}

func (f *fakeItemRepo) CreateItem(item *entity.Item) error {
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItemRepo) GetItemByID(itemID uuid.UUID) (*entity.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (f *fakeItemRepo) GetItemsBySellerID(sellerID uuid.UUID) ([]entity.Item, error) {
	var result []entity.Item
	for _, item := range f.items {
		if item.SellerID == sellerID && item.Status != "deleted" {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeItemRepo) UpdateItem(item *entity.Item) error {
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItemRepo) GetMarketItems(filter entity.ItemFilter) ([]entity.Item, error) {
	var result []entity.Item
	for _, item := range f.items {
		if item.Status == "active" && item.Stock > 0 {
			result = append(result, *item)
		}
	}
	return result, nil
}

type fakeLogRepo struct {
	notifications []entity.Notification
	history       []entity.HistoryStatus
	saveErr       error
}

func (f *fakeLogRepo) SaveNotification(doc *entity.Notification) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.notifications = append(f.notifications, *doc)
	return nil
}

func (f *fakeLogRepo) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.history = append(f.history, *doc)
	return nil
}

func (f *fakeLogRepo) GetNotificationsByUserID(userID string, limit int64) ([]entity.Notification, error) {
	var result []entity.Notification
	for _, doc := range f.notifications {
		if doc.UserID == userID {
			result = append(result, doc)
		}
	}
	return result, nil
}

func (f *fakeLogRepo) MarkNotificationRead(id primitive.ObjectID, userID string) error {
	return nil
}

func (f *fakeLogRepo) GetHistoryByRelatedID(relatedID string) ([]entity.HistoryStatus, error) {
	var result []entity.HistoryStatus
	for _, doc := range f.history {
		if doc.RelatedID == relatedID {
			result = append(result, doc)
		}
	}
	return result, nil
}

func (f *fakeLogRepo) lastNotification() *entity.Notification {
	if len(f.notifications) == 0 {
		return nil
	}
	return &f.notifications[len(f.notifications)-1]
}

type fakeCartRepo struct {
	items map[uuid.UUID][]entity.CartItem // by user
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID][]entity.CartItem)}
}

func (f *fakeCartRepo) UpsertCartItem(item *entity.CartItem) error {
	existing := f.items[item.UserID]
	for i := range existing {
		if existing[i].ItemID == item.ItemID {
			existing[i].Quantity += item.Quantity
			return nil
		}
	}
	f.items[item.UserID] = append(existing, *item)
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(userID, itemID uuid.UUID, quantity int) error {
	for i := range f.items[userID] {
		if f.items[userID][i].ItemID == itemID {
			f.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeCartRepo) RemoveCartItem(userID, itemID uuid.UUID) error {
	items := f.items[userID]
	for i := range items {
		if items[i].ItemID == itemID {
			f.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) GetCartItems(userID uuid.UUID) ([]entity.CartItem, error) {
	return append([]entity.CartItem(nil), f.items[userID]...), nil
}

type fakeOrderRepo struct {
	orders     map[uuid.UUID]*entity.Order
	orderItems map[uuid.UUID][]entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[uuid.UUID]*entity.Order),
		orderItems: make(map[uuid.UUID][]entity.OrderItem),
	}
}

func (f *fakeOrderRepo) CreateOrderTransaction(order *entity.Order, items []entity.OrderItem) error {
	clone := *order
	f.orders[order.ID] = &clone
	f.orderItems[order.ID] = append([]entity.OrderItem(nil), items...)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(orderID uuid.UUID) (*entity.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) GetOrdersByBuyerID(buyerID uuid.UUID) ([]entity.Order, error) {
	var result []entity.Order
	for _, order := range f.orders {
		if order.BuyerID == buyerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) GetOrdersBySellerID(sellerID uuid.UUID) ([]entity.Order, error) {
	var result []entity.Order
	for _, order := range f.orders {
		if order.SellerID == sellerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(orderID uuid.UUID, status string) error {
	f.orders[orderID].Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateOrderShipment(orderID uuid.UUID, courier, receipt string) error {
	order := f.orders[orderID]
	order.ShippingCourier = courier
	order.ShippingReceipt = receipt
	order.Status = entity.OrderStatusShipped
	return nil
}

func (f *fakeOrderRepo) GetOrderItems(orderID uuid.UUID) ([]entity.OrderItem, error) {
	return append([]entity.OrderItem(nil), f.orderItems[orderID]...), nil
}
