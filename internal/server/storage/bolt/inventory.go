package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"stockroom/internal/models"
	"stockroom/internal/server/storage"
)

// CreateItem stores a new inventory item
func (s *Storage) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketInventory)
		if bucket == nil {
			return fmt.Errorf("inventory bucket not found")
		}

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}

		if err := bucket.Put([]byte(item.ID), data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}

		return nil
	})
}

// GetItem retrieves an item by ID
func (s *Storage) GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	var item *models.InventoryItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketInventory)
		if bucket == nil {
			return fmt.Errorf("inventory bucket not found")
		}

		data := bucket.Get([]byte(itemID))
		if data == nil {
			return storage.ErrItemNotFound
		}

		item = &models.InventoryItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems returns all inventory items ordered by creation time
func (s *Storage) ListItems(ctx context.Context) ([]*models.InventoryItem, error) {
	items := make([]*models.InventoryItem, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketInventory)
		if bucket == nil {
			return fmt.Errorf("inventory bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			item := &models.InventoryItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Bucket iteration is keyed by ID; present items in insertion order
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// UpdateItem overwrites the mutable fields of an existing item
func (s *Storage) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketInventory)
		if bucket == nil {
			return fmt.Errorf("inventory bucket not found")
		}

		existing := bucket.Get([]byte(item.ID))
		if existing == nil {
			return storage.ErrItemNotFound
		}

		// Preserve the original creation time
		old := &models.InventoryItem{}
		if err := json.Unmarshal(existing, old); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}
		item.CreatedAt = old.CreatedAt

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}

		if err := bucket.Put([]byte(item.ID), data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}

		return nil
	})
}

// DeleteItem removes an item by ID
func (s *Storage) DeleteItem(ctx context.Context, itemID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketInventory)
		if bucket == nil {
			return fmt.Errorf("inventory bucket not found")
		}

		if bucket.Get([]byte(itemID)) == nil {
			return storage.ErrItemNotFound
		}

		if err := bucket.Delete([]byte(itemID)); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		return nil
	})
}
