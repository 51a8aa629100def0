package storage

import (
	"context"

	"stockroom/internal/models"
)

// InventoryStorage defines interface for inventory item persistence
type InventoryStorage interface {
	// CreateItem stores a new inventory item
	CreateItem(ctx context.Context, item *models.InventoryItem) error

	// GetItem retrieves an item by ID
	// Returns ErrItemNotFound if it doesn't exist
	GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error)

	// ListItems returns all inventory items
	ListItems(ctx context.Context) ([]*models.InventoryItem, error)

	// UpdateItem overwrites the mutable fields of an existing item.
	// Last write wins; there is no optimistic locking.
	// Returns ErrItemNotFound if it doesn't exist.
	UpdateItem(ctx context.Context, item *models.InventoryItem) error

	// DeleteItem removes an item by ID
	// Returns ErrItemNotFound if it doesn't exist
	DeleteItem(ctx context.Context, itemID string) error
}
