package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
)

// CreateMenuItem persists a new menu item.
func (s *SQLiteStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nameKey := strings.ToLower(strings.TrimSpace(item.Name))

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM menu_items WHERE name_key = ?", nameKey).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%q: %w", item.Name, storage.ErrDuplicateName)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check menu item name: %w", err)
	}

	id := item.ID
	if id == 0 {
		err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM menu_items").Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to assign menu item id: %w", err)
		}
	} else {
		err = tx.QueryRowContext(ctx, "SELECT 1 FROM menu_items WHERE id = ?", id).Scan(&exists)
		if err == nil {
			return fmt.Errorf("menu item %d: %w", id, storage.ErrDuplicateID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check menu item id: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO menu_items (id, name, name_key, unit_price) VALUES (?, ?, ?, ?)",
		id, item.Name, nameKey, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	item.ID = id
	return nil
}

// GetMenuItem retrieves a menu item by ID.
func (s *SQLiteStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, unit_price FROM menu_items WHERE id = ?",
		id,
	).Scan(&item.ID, &item.Name, &item.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu item %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// ListMenuItems returns all menu items in ID order.
func (s *SQLiteStore) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, unit_price FROM menu_items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

// DeleteMenuItem removes a menu item by ID.
// Past transactions keep their own copy of the item name and price.
func (s *SQLiteStore) DeleteMenuItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("menu item %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
