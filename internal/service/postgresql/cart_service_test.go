package service

import (
	"testing"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartSnapshotsPrice(t *testing.T) {
	itemRepo := newFakeItemRepo()
	cartRepo := newFakeCartRepo()
	service := NewCartService(cartRepo, itemRepo)

	buyer := uuid.New()
	item := &entity.Item{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Name:     "mechanical keyboard",
		Price:    750,
		Stock:    5,
		Status:   "active",
	}
	require.NoError(t, itemRepo.CreateItem(item))

	cartItem, err := service.AddToCart(buyer, entity.AddCartItemInput{ItemID: item.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 750.0, cartItem.UnitPrice)
	assert.Equal(t, "mechanical keyboard", cartItem.ItemName)

	// a later price edit by the seller does not reprice the cart line
	item.Price = 900
	require.NoError(t, itemRepo.UpdateItem(item))

	items, total, err := service.GetCart(buyer)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 750.0, items[0].UnitPrice)
	assert.Equal(t, 1500.0, total)
}

func TestAddToCartRejectsUnavailableItems(t *testing.T) {
	itemRepo := newFakeItemRepo()
	service := NewCartService(newFakeCartRepo(), itemRepo)
	buyer := uuid.New()

	_, err := service.AddToCart(buyer, entity.AddCartItemInput{ItemID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrItemNotPurchasable)

	inactive := &entity.Item{ID: uuid.New(), Name: "old lamp", Price: 10, Stock: 3, Status: "inactive"}
	require.NoError(t, itemRepo.CreateItem(inactive))
	_, err = service.AddToCart(buyer, entity.AddCartItemInput{ItemID: inactive.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrItemNotPurchasable)

	lowStock := &entity.Item{ID: uuid.New(), Name: "rare stamp", Price: 10, Stock: 1, Status: "active"}
	require.NoError(t, itemRepo.CreateItem(lowStock))
	_, err = service.AddToCart(buyer, entity.AddCartItemInput{ItemID: lowStock.ID, Quantity: 2})
	assert.ErrorIs(t, err, ErrItemNotPurchasable)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	service := NewCartService(newFakeCartRepo(), newFakeItemRepo())

	err := service.UpdateQuantity(uuid.New(), uuid.New(), 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}
