package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

const itemColumns = `id, pack_id, name, price, created_at, updated_at`

// CreateItem persists a new item. The referenced pack must exist.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.requirePack(ctx, item.PackID); err != nil {
		return err
	}
	stampItem(item)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO items (pack_id, name, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		item.PackID, item.Name, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert item", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id,
	).Scan(&item.ID, &item.PackID, &item.Name, &item.Price, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems retrieves items, optionally restricted to one pack.
func (s *SQLiteStore) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items"
	var args []any
	if filter.PackID != 0 {
		query += " WHERE pack_id = ?"
		args = append(args, filter.PackID)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.PackID, &item.Name, &item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// UpdateItem updates the name and price of an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ?, price = ?, updated_at = ? WHERE id = ?",
		item.Name, item.Price, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return wrapWrite("update item", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", item.ID, storage.ErrNotFound)
	}

	return nil
}

// UpsertItem updates the item if it exists, otherwise inserts it with the given ID.
func (s *SQLiteStore) UpsertItem(ctx context.Context, item *models.Item) (bool, error) {
	err := s.UpdateItem(ctx, item)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	if err := s.requirePack(ctx, item.PackID); err != nil {
		return false, err
	}
	stampItem(item)
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO items (id, pack_id, name, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.PackID, item.Name, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return false, wrapWrite("insert item", err)
	}

	return true, nil
}

// DeleteItem removes an item by ID.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// requirePack returns ErrPackNotFound unless the pack exists.
func (s *SQLiteStore) requirePack(ctx context.Context, packID int64) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM packs WHERE id = ?", packID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("pack %d: %w", packID, storage.ErrPackNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check pack existence: %w", err)
	}
	return nil
}

func stampItem(item *models.Item) {
	now := time.Now().Unix()
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
}
