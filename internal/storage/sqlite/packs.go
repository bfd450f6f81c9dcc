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

const packColumns = `id, name, description, owner_id, created_at, updated_at`

// CreatePack persists a new pack to the database.
func (s *SQLiteStore) CreatePack(ctx context.Context, pack *models.Pack) error {
	stampPack(pack)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO packs (name, description, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		pack.Name, pack.Description, nullableID(pack.OwnerID), pack.CreatedAt, pack.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert pack", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read pack id: %w", err)
	}
	pack.ID = id
	pack.Items = []models.Item{}

	return nil
}

// CreatePackWithItems inserts a pack and its items in one transaction.
func (s *SQLiteStore) CreatePackWithItems(ctx context.Context, pack *models.Pack) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stampPack(pack)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO packs (name, description, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		pack.Name, pack.Description, nullableID(pack.OwnerID), pack.CreatedAt, pack.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert pack", err)
	}
	packID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read pack id: %w", err)
	}

	items := make([]models.Item, len(pack.Items))
	copy(items, pack.Items)
	for i := range items {
		item := &items[i]
		item.PackID = packID
		stampItem(item)
		res, err := tx.ExecContext(ctx,
			"INSERT INTO items (pack_id, name, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			item.PackID, item.Name, item.Price, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return wrapWrite(fmt.Sprintf("insert item %q", item.Name), err)
		}
		if item.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read item id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	pack.ID = packID
	pack.Items = items
	return nil
}

// GetPack retrieves a pack by ID, including all items.
func (s *SQLiteStore) GetPack(ctx context.Context, id int64) (*models.Pack, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+packColumns+" FROM packs WHERE id = ?", id)
	return s.loadPack(ctx, row, id)
}

// GetPackByName retrieves a pack by its unique name, including all items.
func (s *SQLiteStore) GetPackByName(ctx context.Context, name string) (*models.Pack, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+packColumns+" FROM packs WHERE name = ?", name)
	return s.loadPack(ctx, row, name)
}

func (s *SQLiteStore) loadPack(ctx context.Context, row *sql.Row, key any) (*models.Pack, error) {
	pack, err := scanPack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pack %v: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	items, err := s.ListItems(ctx, models.ItemFilter{PackID: pack.ID})
	if err != nil {
		return nil, err
	}
	pack.Items = make([]models.Item, len(items))
	for i, item := range items {
		pack.Items[i] = *item
	}

	return pack, nil
}

// ListPacks retrieves all packs with their items.
func (s *SQLiteStore) ListPacks(ctx context.Context) ([]*models.Pack, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+packColumns+" FROM packs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	defer rows.Close()

	packs := []*models.Pack{}
	byID := make(map[int64]*models.Pack)
	for rows.Next() {
		pack, err := scanPack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pack: %w", err)
		}
		pack.Items = []models.Item{}
		packs = append(packs, pack)
		byID[pack.ID] = pack
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packs: %w", err)
	}
	rows.Close()

	// One query for all items, then attach them to their packs.
	items, err := s.ListItems(ctx, models.ItemFilter{})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if pack, ok := byID[item.PackID]; ok {
			pack.Items = append(pack.Items, *item)
		}
	}

	return packs, nil
}

// UpdatePack updates the name and description of an existing pack.
func (s *SQLiteStore) UpdatePack(ctx context.Context, pack *models.Pack) error {
	pack.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		"UPDATE packs SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		pack.Name, pack.Description, pack.UpdatedAt, pack.ID,
	)
	if err != nil {
		return wrapWrite("update pack", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pack %d: %w", pack.ID, storage.ErrNotFound)
	}

	return nil
}

// UpsertPack updates the pack if it exists, otherwise inserts it with the given ID.
func (s *SQLiteStore) UpsertPack(ctx context.Context, pack *models.Pack) (bool, error) {
	err := s.UpdatePack(ctx, pack)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	stampPack(pack)
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO packs (id, name, description, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		pack.ID, pack.Name, pack.Description, nullableID(pack.OwnerID), pack.CreatedAt, pack.UpdatedAt,
	)
	if err != nil {
		return false, wrapWrite("insert pack", err)
	}
	pack.Items = []models.Item{}

	return true, nil
}

// DeletePack removes a pack and its items by ID.
func (s *SQLiteStore) DeletePack(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE pack_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete pack items: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM packs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete pack: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pack %d: %w", id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPack(row rowScanner) (*models.Pack, error) {
	pack := &models.Pack{}
	var owner sql.NullInt64
	if err := row.Scan(&pack.ID, &pack.Name, &pack.Description, &owner, &pack.CreatedAt, &pack.UpdatedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		ownerID := owner.Int64
		pack.OwnerID = &ownerID
	}
	return pack, nil
}

func stampPack(pack *models.Pack) {
	now := time.Now().Unix()
	if pack.CreatedAt == 0 {
		pack.CreatedAt = now
	}
	pack.UpdatedAt = now
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
