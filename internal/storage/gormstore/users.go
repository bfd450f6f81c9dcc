package gormstore

import (
	"context"

	"github.com/mmynk/packs/internal/models"
)

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	row := toUserRow(user)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate("create user", err)
	}
	user.ID = row.ID
	return nil
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translate("get user by username", err)
	}
	return row.toModel(), nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate("get user by ID", err)
	}
	return row.toModel(), nil
}
