package service

import (
	"errors"

	entity "swap-market/internal/domain"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNotItemOwner = errors.New("unauthorized: you do not own this item")
)

type ItemService struct {
	itemRepo repo.ItemRepository
}

func NewItemService(itemRepo repo.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

func (s *ItemService) CreateItem(sellerID uuid.UUID, input entity.CreateItemInput) (*entity.Item, error) {
	item := &entity.Item{
		ID:             uuid.New(),
		SellerID:       sellerID,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		EstimatedValue: input.EstimatedValue,
		Stock:          input.Stock,
		Condition:      input.Condition,
		Category:       input.Category,
		ImageURL:       input.ImageURL,
		Status:         "active",
	}
	if err := s.itemRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) UpdateItem(sellerID, itemID uuid.UUID, input entity.UpdateItemInput) (*entity.Item, error) {
	item, err := s.getOwnedItem(sellerID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.EstimatedValue != nil {
		item.EstimatedValue = *input.EstimatedValue
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.Condition != "" {
		item.Condition = input.Condition
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if input.Status != "" {
		item.Status = input.Status
	}

	if err := s.itemRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem soft-deletes; barters and orders keep referencing the row.
func (s *ItemService) DeleteItem(sellerID, itemID uuid.UUID) error {
	item, err := s.getOwnedItem(sellerID, itemID)
	if err != nil {
		return err
	}
	item.Status = "deleted"
	return s.itemRepo.UpdateItem(item)
}

func (s *ItemService) GetMyItems(sellerID uuid.UUID) ([]entity.Item, error) {
	return s.itemRepo.GetItemsBySellerID(sellerID)
}

func (s *ItemService) GetMarketplaceItems(filter entity.ItemFilter) ([]entity.Item, error) {
	return s.itemRepo.GetMarketItems(filter)
}

func (s *ItemService) GetItemDetail(itemID uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status != "active" {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) getOwnedItem(sellerID, itemID uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status == "deleted" {
		return nil, ErrItemNotFound
	}
	if item.SellerID != sellerID {
		return nil, ErrNotItemOwner
	}
	return item, nil
}
