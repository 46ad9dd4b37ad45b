package repository

import (
	"database/sql"
	"fmt"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
)

type ItemRepository interface {
	CreateItem(item *entity.Item) error
	GetItemByID(itemID uuid.UUID) (*entity.Item, error)
	GetItemsBySellerID(sellerID uuid.UUID) ([]entity.Item, error)
	UpdateItem(item *entity.Item) error
	GetMarketItems(filter entity.ItemFilter) ([]entity.Item, error)
}

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, seller_id, name, description, price, estimated_value, stock, condition, category, image_url, status, created_at, updated_at`

func (r *itemRepository) CreateItem(item *entity.Item) error {
	query := `
		INSERT INTO items (id, seller_id, name, description, price, estimated_value, stock, condition, category, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(query,
		item.ID, item.SellerID, item.Name, item.Description, item.Price,
		item.EstimatedValue, item.Stock, item.Condition, item.Category,
		item.ImageURL, item.Status,
	)
	return err
}

func (r *itemRepository) GetItemByID(itemID uuid.UUID) (*entity.Item, error) {
	row := r.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) GetItemsBySellerID(sellerID uuid.UUID) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE seller_id = $1 AND status != 'deleted' ORDER BY created_at DESC`
	return r.queryItems(query, sellerID)
}

func (r *itemRepository) UpdateItem(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, price = $3, estimated_value = $4, stock = $5,
		    condition = $6, category = $7, image_url = $8, status = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := r.db.Exec(query,
		item.Name, item.Description, item.Price, item.EstimatedValue, item.Stock,
		item.Condition, item.Category, item.ImageURL, item.Status, item.ID,
	)
	return err
}

func (r *itemRepository) GetMarketItems(filter entity.ItemFilter) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status = 'active' AND stock > 0`
	args := []interface{}{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", n, n)
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.MinPrice > 0 {
		args = append(args, filter.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryItems(query, args...)
}

func (r *itemRepository) queryItems(query string, args ...interface{}) ([]entity.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var item entity.Item
		err := rows.Scan(
			&item.ID, &item.SellerID, &item.Name, &item.Description, &item.Price,
			&item.EstimatedValue, &item.Stock, &item.Condition, &item.Category,
			&item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row *sql.Row) (*entity.Item, error) {
	var item entity.Item
	err := row.Scan(
		&item.ID, &item.SellerID, &item.Name, &item.Description, &item.Price,
		&item.EstimatedValue, &item.Stock, &item.Condition, &item.Category,
		&item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
