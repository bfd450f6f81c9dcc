package gormstore

import "github.com/mmynk/packs/internal/models"

type userRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64
}

func (userRow) TableName() string {
	return "users"
}

type packRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"not null;default:''"`
	OwnerID     *int64 `gorm:"index"`
	CreatedAt   int64
	UpdatedAt   int64
	Items       []itemRow `gorm:"foreignKey:PackID;constraint:OnDelete:CASCADE"`
}

func (packRow) TableName() string {
	return "packs"
}

type itemRow struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	PackID    int64   `gorm:"not null;index;uniqueIndex:idx_items_pack_name"`
	Name      string  `gorm:"not null;uniqueIndex:idx_items_pack_name"`
	Price     float64 `gorm:"not null"`
	CreatedAt int64
	UpdatedAt int64
}

func (itemRow) TableName() string {
	return "items"
}

func toUserRow(u *models.User) *userRow {
	return &userRow{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func toPackRow(p *models.Pack) *packRow {
	return &packRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *packRow) toModel() *models.Pack {
	pack := &models.Pack{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Items:       make([]models.Item, len(r.Items)),
	}
	for i := range r.Items {
		pack.Items[i] = *r.Items[i].toModel()
	}
	return pack
}

func toItemRow(i *models.Item) *itemRow {
	return &itemRow{
		ID:        i.ID,
		PackID:    i.PackID,
		Name:      i.Name,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (r *itemRow) toModel() *models.Item {
	return &models.Item{
		ID:        r.ID,
		PackID:    r.PackID,
		Name:      r.Name,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
