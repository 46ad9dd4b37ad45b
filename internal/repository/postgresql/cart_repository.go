package repository

import (
	"database/sql"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
)

type CartRepository interface {
	UpsertCartItem(item *entity.CartItem) error
	UpdateQuantity(userID, itemID uuid.UUID, quantity int) error
	RemoveCartItem(userID, itemID uuid.UUID) error
	GetCartItems(userID uuid.UUID) ([]entity.CartItem, error)
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// UpsertCartItem adds the item or bumps the quantity if it is already there.
func (r *cartRepository) UpsertCartItem(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, item_id, item_name, unit_price, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.db.Exec(query,
		item.ID, item.UserID, item.ItemID, item.ItemName, item.UnitPrice, item.Quantity,
	)
	return err
}

func (r *cartRepository) UpdateQuantity(userID, itemID uuid.UUID, quantity int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND item_id = $3`, quantity, userID, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *cartRepository) RemoveCartItem(userID, itemID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	return err
}

func (r *cartRepository) GetCartItems(userID uuid.UUID) ([]entity.CartItem, error) {
	query := `
		SELECT id, user_id, item_id, item_name, unit_price, quantity, added_at
		FROM cart_items WHERE user_id = $1 ORDER BY added_at
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ItemID, &item.ItemName,
			&item.UnitPrice, &item.Quantity, &item.AddedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
