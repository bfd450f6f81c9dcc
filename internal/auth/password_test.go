package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: make(map[string]*models.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[user.Username]; ok {
		return fmt.Errorf("create user: %w", storage.ErrConflict)
	}
	f.nextID++
	user.ID = f.nextID
	f.byName[user.Username] = user
	return nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byName[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	return user, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newFakeUsers()).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, "  Alice ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	t.Run("login is case-insensitive on username", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "ALICE", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "mallory", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := a.Register(ctx, "alice", "another password")
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "bob", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("empty username", func(t *testing.T) {
		_, err := a.Register(ctx, "   ", "long enough")
		assert.ErrorIs(t, err, ErrInvalidUsername)
	})
}
