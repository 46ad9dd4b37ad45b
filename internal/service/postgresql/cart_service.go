package service

import (
	"database/sql"
	"errors"

	entity "swap-market/internal/domain"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound  = errors.New("item not in cart")
	ErrItemNotPurchasable = errors.New("item is not available for purchase")
)

type CartService struct {
	cartRepo repo.CartRepository
	itemRepo repo.ItemRepository
}

func NewCartService(cartRepo repo.CartRepository, itemRepo repo.ItemRepository) *CartService {
	return &CartService{cartRepo: cartRepo, itemRepo: itemRepo}
}

// AddToCart snapshots the listing name and price at add time; later price
// edits by the seller do not silently reprice a cart.
func (s *CartService) AddToCart(userID uuid.UUID, input entity.AddCartItemInput) (*entity.CartItem, error) {
	item, err := s.itemRepo.GetItemByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status != "active" || item.Stock < input.Quantity {
		return nil, ErrItemNotPurchasable
	}

	cartItem := &entity.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    item.ID,
		ItemName:  item.Name,
		UnitPrice: item.Price,
		Quantity:  input.Quantity,
	}
	if err := s.cartRepo.UpsertCartItem(cartItem); err != nil {
		return nil, err
	}
	return cartItem, nil
}

func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, quantity int) error {
	err := s.cartRepo.UpdateQuantity(userID, itemID, quantity)
	if err == sql.ErrNoRows {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) RemoveFromCart(userID, itemID uuid.UUID) error {
	return s.cartRepo.RemoveCartItem(userID, itemID)
}

func (s *CartService) GetCart(userID uuid.UUID) ([]entity.CartItem, float64, error) {
	items, err := s.cartRepo.GetCartItems(userID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return items, total, nil
}
