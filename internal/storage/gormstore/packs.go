package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// CreatePack inserts a new pack.
func (s *Store) CreatePack(ctx context.Context, pack *models.Pack) error {
	row := toPackRow(pack)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate("insert pack", err)
	}
	pack.ID = row.ID
	pack.CreatedAt = row.CreatedAt
	pack.UpdatedAt = row.UpdatedAt
	pack.Items = []models.Item{}
	return nil
}

// CreatePackWithItems inserts a pack and its items in one transaction.
func (s *Store) CreatePackWithItems(ctx context.Context, pack *models.Pack) error {
	row := toPackRow(pack)
	row.ID = 0
	for i := range pack.Items {
		item := toItemRow(&pack.Items[i])
		item.ID = 0
		item.PackID = 0
		row.Items = append(row.Items, *item)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(row).Error; err != nil {
			return translate("insert pack", err)
		}
		for i := range row.Items {
			row.Items[i].PackID = row.ID
			if err := tx.Create(&row.Items[i]).Error; err != nil {
				return translate(fmt.Sprintf("insert item %q", row.Items[i].Name), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	saved := row.toModel()
	*pack = *saved
	return nil
}

// GetPack retrieves a pack with its items.
func (s *Store) GetPack(ctx context.Context, id int64) (*models.Pack, error) {
	var row packRow
	err := s.db.WithContext(ctx).Preload("Items", orderedItems).First(&row, id).Error
	if err != nil {
		return nil, translate("get pack", err)
	}
	return row.toModel(), nil
}

// GetPackByName retrieves a pack by name with its items.
func (s *Store) GetPackByName(ctx context.Context, name string) (*models.Pack, error) {
	var row packRow
	err := s.db.WithContext(ctx).Preload("Items", orderedItems).Where("name = ?", name).First(&row).Error
	if err != nil {
		return nil, translate("get pack by name", err)
	}
	return row.toModel(), nil
}

// ListPacks retrieves all packs with their items.
func (s *Store) ListPacks(ctx context.Context) ([]*models.Pack, error) {
	var rows []packRow
	if err := s.db.WithContext(ctx).Preload("Items", orderedItems).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list packs", err)
	}
	packs := make([]*models.Pack, len(rows))
	for i := range rows {
		packs[i] = rows[i].toModel()
	}
	return packs, nil
}

// UpdatePack updates name and description of an existing pack.
func (s *Store) UpdatePack(ctx context.Context, pack *models.Pack) error {
	pack.UpdatedAt = time.Now().Unix()
	res := s.db.WithContext(ctx).Model(&packRow{}).Where("id = ?", pack.ID).Updates(map[string]any{
		"name":        pack.Name,
		"description": pack.Description,
		"updated_at":  pack.UpdatedAt,
	})
	if res.Error != nil {
		return translate("update pack", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pack %d: %w", pack.ID, storage.ErrNotFound)
	}
	return nil
}

// UpsertPack updates the pack, creating it with its explicit ID when missing.
func (s *Store) UpsertPack(ctx context.Context, pack *models.Pack) (bool, error) {
	err := s.UpdatePack(ctx, pack)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	row := toPackRow(pack)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return false, translate("insert pack", err)
	}
	if err := s.syncSequence(ctx, "packs"); err != nil {
		return false, fmt.Errorf("failed to sync pack sequence: %w", err)
	}
	pack.CreatedAt = row.CreatedAt
	pack.UpdatedAt = row.UpdatedAt
	pack.Items = []models.Item{}
	return true, nil
}

// DeletePack removes a pack and its items in one transaction.
func (s *Store) DeletePack(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pack_id = ?", id).Delete(&itemRow{}).Error; err != nil {
			return translate("delete pack items", err)
		}
		res := tx.Delete(&packRow{}, id)
		if res.Error != nil {
			return translate("delete pack", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pack %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}
