package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

// CreateItem inserts a new item. The referenced pack must exist.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.requirePack(ctx, item.PackID); err != nil {
		return err
	}
	row := toItemRow(item)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate("insert item", err)
	}
	item.ID = row.ID
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return nil
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var row itemRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate("get item", err)
	}
	return row.toModel(), nil
}

// ListItems retrieves items, optionally restricted to one pack.
func (s *Store) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	q := s.db.WithContext(ctx).Order("id")
	if filter.PackID != 0 {
		q = q.Where("pack_id = ?", filter.PackID)
	}
	var rows []itemRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate("list items", err)
	}
	items := make([]*models.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].toModel()
	}
	return items, nil
}

// UpdateItem updates name and price of an existing item.
func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now().Unix()
	res := s.db.WithContext(ctx).Model(&itemRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":       item.Name,
		"price":      item.Price,
		"updated_at": item.UpdatedAt,
	})
	if res.Error != nil {
		return translate("update item", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, storage.ErrNotFound)
	}
	return nil
}

// UpsertItem updates the item, creating it with its explicit ID when missing.
func (s *Store) UpsertItem(ctx context.Context, item *models.Item) (bool, error) {
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
	row := toItemRow(item)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return false, translate("insert item", err)
	}
	if err := s.syncSequence(ctx, "items"); err != nil {
		return false, fmt.Errorf("failed to sync item sequence: %w", err)
	}
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return true, nil
}

// DeleteItem removes an item by ID.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&itemRow{}, id)
	if res.Error != nil {
		return translate("delete item", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) requirePack(ctx context.Context, packID int64) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&packRow{}).Where("id = ?", packID).Count(&n).Error; err != nil {
		return translate("check pack existence", err)
	}
	if n == 0 {
		return fmt.Errorf("pack %d: %w", packID, storage.ErrPackNotFound)
	}
	return nil
}
