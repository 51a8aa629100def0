package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stockroom/internal/models"
	"stockroom/internal/server/storage"
)

// CreateItem stores a new inventory item
func (s *Storage) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, quantity, price, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Quantity,
		item.Price,
		item.Category,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID
func (s *Storage) GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	query := `
		SELECT id, name, quantity, price, category, created_at, updated_at
		FROM inventory_items
		WHERE id = ?
	`

	item := &models.InventoryItem{}

	err := s.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.Price,
		&item.Category,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListItems returns all inventory items ordered by creation time
func (s *Storage) ListItems(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, name, quantity, price, category, created_at, updated_at
		FROM inventory_items
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.InventoryItem, 0)
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Quantity,
			&item.Price,
			&item.Category,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// UpdateItem overwrites the mutable fields of an existing item
func (s *Storage) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = ?, quantity = ?, price = ?, category = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		item.Name,
		item.Quantity,
		item.Price,
		item.Category,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}

// DeleteItem removes an item by ID
func (s *Storage) DeleteItem(ctx context.Context, itemID string) error {
	query := `DELETE FROM inventory_items WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}
