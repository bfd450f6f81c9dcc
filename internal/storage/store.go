// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/packs/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrPackNotFound is returned when an item references a pack that does not exist.
	ErrPackNotFound = errors.New("pack not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)

// UserStore holds user accounts.
type UserStore interface {
	// CreateUser persists a new user. user.ID is populated by the store.
	// Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns ErrNotFound if no user has that username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// PackStore holds packs.
type PackStore interface {
	// CreatePack persists a new pack and assigns its ID and timestamps.
	// Returns ErrConflict if the name is taken.
	CreatePack(ctx context.Context, pack *models.Pack) error

	// CreatePackWithItems persists a new pack and pack.Items in one
	// transaction. Either everything is stored or nothing is.
	CreatePackWithItems(ctx context.Context, pack *models.Pack) error

	// GetPack retrieves a pack by ID including its items.
	GetPack(ctx context.Context, id int64) (*models.Pack, error)

	// GetPackByName retrieves a pack by its unique name including its items.
	GetPackByName(ctx context.Context, name string) (*models.Pack, error)

	// ListPacks returns every pack with its items, ordered by ID.
	ListPacks(ctx context.Context) ([]*models.Pack, error)

	// UpdatePack changes name and description of an existing pack.
	// Returns ErrNotFound if the pack does not exist.
	UpdatePack(ctx context.Context, pack *models.Pack) error

	// UpsertPack updates the pack with pack.ID, or creates it with that ID.
	// created reports which one happened.
	UpsertPack(ctx context.Context, pack *models.Pack) (created bool, err error)

	// DeletePack removes a pack and all of its items.
	DeletePack(ctx context.Context, id int64) error
}

// ItemStore holds items.
type ItemStore interface {
	// CreateItem persists a new item. Returns ErrPackNotFound if item.PackID
	// does not reference an existing pack.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by ID.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// ListItems returns items matching the filter, ordered by ID.
	ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error)

	// UpdateItem changes name and price of an existing item.
	UpdateItem(ctx context.Context, item *models.Item) error

	// UpsertItem updates the item with item.ID, or creates it with that ID.
	UpsertItem(ctx context.Context, item *models.Item) (created bool, err error)

	// DeleteItem removes an item by ID.
	DeleteItem(ctx context.Context, id int64) error
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL via GORM)
// without changing the HTTP layer.
type Store interface {
	UserStore
	PackStore
	ItemStore

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
