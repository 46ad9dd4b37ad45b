package repository

import (
	"database/sql"
	"errors"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateOrderTransaction(order *entity.Order, items []entity.OrderItem) error
	GetOrderByID(orderID uuid.UUID) (*entity.Order, error)
	GetOrdersByBuyerID(buyerID uuid.UUID) ([]entity.Order, error)
	GetOrdersBySellerID(sellerID uuid.UUID) ([]entity.Order, error)
	UpdateOrderStatus(orderID uuid.UUID, status string) error
	UpdateOrderShipment(orderID uuid.UUID, courier, receipt string) error
	GetOrderItems(orderID uuid.UUID) ([]entity.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, buyer_id, seller_id, status, total_price, shipping_address, shipping_courier, shipping_receipt, created_at, updated_at`

// CreateOrderTransaction inserts the order and its lines, decrements stock and
// empties the buyer's cart in a single transaction. Stock decrement is guarded
// so two concurrent checkouts cannot oversell.
func (r *orderRepository) CreateOrderTransaction(order *entity.Order, orderItems []entity.OrderItem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	orderQuery := `
		INSERT INTO orders (id, buyer_id, seller_id, status, total_price, shipping_address, shipping_courier, shipping_receipt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '', NOW(), NOW())
	`
	if _, err := tx.Exec(orderQuery,
		order.ID, order.BuyerID, order.SellerID, order.Status,
		order.TotalPrice, order.ShippingAddress, order.ShippingCourier,
	); err != nil {
		tx.Rollback()
		return err
	}

	for _, item := range orderItems {
		itemQuery := `
			INSERT INTO order_items (id, order_id, item_id, item_name, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`
		if _, err := tx.Exec(itemQuery, item.ID, item.OrderID, item.ItemID, item.ItemName, item.Quantity, item.Price); err != nil {
			tx.Rollback()
			return err
		}

		res, err := tx.Exec(`UPDATE items SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`, item.Quantity, item.ItemID)
		if err != nil {
			tx.Rollback()
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return err
		}
		if affected == 0 {
			tx.Rollback()
			return ErrInsufficientStock
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, order.BuyerID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(orderID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID).Scan(
		&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalPrice,
		&order.ShippingAddress, &order.ShippingCourier, &order.ShippingReceipt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrdersByBuyerID(buyerID uuid.UUID) ([]entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`, buyerID)
}

func (r *orderRepository) GetOrdersBySellerID(sellerID uuid.UUID) ([]entity.Order, error) {
	return r.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
}

func (r *orderRepository) UpdateOrderStatus(orderID uuid.UUID, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, orderID)
	return err
}

func (r *orderRepository) UpdateOrderShipment(orderID uuid.UUID, courier, receipt string) error {
	query := `
		UPDATE orders SET shipping_courier = $1, shipping_receipt = $2, status = 'shipped', updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(query, courier, receipt, orderID)
	return err
}

func (r *orderRepository) GetOrderItems(orderID uuid.UUID) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, item_id, item_name, quantity, price, created_at
		FROM order_items WHERE order_id = $1
	`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ItemID, &item.ItemName, &item.Quantity, &item.Price, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) queryOrders(query string, args ...interface{}) ([]entity.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalPrice,
			&order.ShippingAddress, &order.ShippingCourier, &order.ShippingReceipt,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
