package auth

import (
	"context"
	"sync"
	"time"

	"github.com/mmynk/packs/internal/models"
)

// Blocklist records revoked token identifiers.
// A revoked jti must be rejected for as long as the token itself is valid.
type Blocklist interface {
	Revoke(ctx context.Context, token models.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryBlocklist keeps revoked jti values in process memory.
// Entries are lost on restart.
type MemoryBlocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

var _ Blocklist = (*MemoryBlocklist)(nil)

// NewMemoryBlocklist creates an empty in-memory blocklist.
func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke adds the token and drops entries whose tokens have expired.
func (b *MemoryBlocklist) Revoke(_ context.Context, token models.RevokedToken) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for jti, expiresAt := range b.entries {
		if !expiresAt.IsZero() && expiresAt.Before(now) {
			delete(b.entries, jti)
		}
	}
	b.entries[token.JTI] = token.ExpiresAt
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (b *MemoryBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.entries[jti]
	return ok, nil
}

// Len returns the number of entries currently held.
func (b *MemoryBlocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
