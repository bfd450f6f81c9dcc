package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "packs-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID", func(t *testing.T) {
		user := models.NewUser("alice", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}

		got, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.ID != user.ID || got.PasswordHash != "hash" || got.CreatedAt != user.CreatedAt {
			t.Errorf("User mismatch: got %+v, want %+v", got, user)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Username != "alice" {
			t.Errorf("Username mismatch: got %s, want alice", byID.Username)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice", "other"))
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("missing user is not found", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Packs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create then read returns identical data", func(t *testing.T) {
		original := &models.Pack{Name: "Camping", Description: "Outdoor gear"}
		if err := store.CreatePack(ctx, original); err != nil {
			t.Fatalf("CreatePack failed: %v", err)
		}
		if original.ID == 0 || original.CreatedAt == 0 {
			t.Fatalf("Expected ID and CreatedAt to be set, got %+v", original)
		}

		item := &models.Item{PackID: original.ID, Name: "Tent", Price: 199.99}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		retrieved, err := store.GetPack(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetPack failed: %v", err)
		}
		if retrieved.Name != original.Name || retrieved.Description != original.Description {
			t.Errorf("Pack mismatch: got %+v, want %+v", retrieved, original)
		}
		if retrieved.OwnerID != nil {
			t.Errorf("Expected nil owner, got %d", *retrieved.OwnerID)
		}
		if len(retrieved.Items) != 1 || retrieved.Items[0] != *item {
			t.Errorf("Items mismatch: got %+v, want [%+v]", retrieved.Items, *item)
		}
	})

	t.Run("owner is persisted", func(t *testing.T) {
		user := models.NewUser("owner", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		pack := &models.Pack{Name: "Owned", OwnerID: &user.ID}
		if err := store.CreatePack(ctx, pack); err != nil {
			t.Fatalf("CreatePack failed: %v", err)
		}

		got, err := store.GetPackByName(ctx, "Owned")
		if err != nil {
			t.Fatalf("GetPackByName failed: %v", err)
		}
		if got.OwnerID == nil || *got.OwnerID != user.ID {
			t.Errorf("Owner mismatch: got %v, want %d", got.OwnerID, user.ID)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		err := store.CreatePack(ctx, &models.Pack{Name: "Camping"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("UpdatePack changes fields", func(t *testing.T) {
		pack, err := store.GetPackByName(ctx, "Camping")
		if err != nil {
			t.Fatalf("GetPackByName failed: %v", err)
		}
		pack.Description = "Tents and stoves"
		if err := store.UpdatePack(ctx, pack); err != nil {
			t.Fatalf("UpdatePack failed: %v", err)
		}
		got, err := store.GetPack(ctx, pack.ID)
		if err != nil {
			t.Fatalf("GetPack failed: %v", err)
		}
		if got.Description != "Tents and stoves" {
			t.Errorf("Description mismatch: got %q", got.Description)
		}
	})

	t.Run("UpdatePack on missing pack is not found", func(t *testing.T) {
		err := store.UpdatePack(ctx, &models.Pack{ID: 4242, Name: "Ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpsertPack creates then updates", func(t *testing.T) {
		pack := &models.Pack{ID: 500, Name: "Upserted"}
		created, err := store.UpsertPack(ctx, pack)
		if err != nil {
			t.Fatalf("UpsertPack failed: %v", err)
		}
		if !created {
			t.Error("Expected first upsert to create")
		}

		pack.Description = "second"
		created, err = store.UpsertPack(ctx, pack)
		if err != nil {
			t.Fatalf("UpsertPack failed: %v", err)
		}
		if created {
			t.Error("Expected second upsert to update")
		}

		got, err := store.GetPack(ctx, 500)
		if err != nil {
			t.Fatalf("GetPack failed: %v", err)
		}
		if got.Description != "second" {
			t.Errorf("Description mismatch: got %q", got.Description)
		}
	})

	t.Run("ListPacks attaches items", func(t *testing.T) {
		packs, err := store.ListPacks(ctx)
		if err != nil {
			t.Fatalf("ListPacks failed: %v", err)
		}
		if len(packs) != 3 {
			t.Fatalf("Expected 3 packs, got %d", len(packs))
		}
		if len(packs[0].Items) != 1 {
			t.Errorf("Expected first pack to carry 1 item, got %d", len(packs[0].Items))
		}
		for _, p := range packs[1:] {
			if p.Items == nil || len(p.Items) != 0 {
				t.Errorf("Expected empty item slice for pack %q, got %v", p.Name, p.Items)
			}
		}
	})

	t.Run("DeletePack removes its items", func(t *testing.T) {
		pack, err := store.GetPackByName(ctx, "Camping")
		if err != nil {
			t.Fatalf("GetPackByName failed: %v", err)
		}
		if err := store.DeletePack(ctx, pack.ID); err != nil {
			t.Fatalf("DeletePack failed: %v", err)
		}
		if _, err := store.GetPack(ctx, pack.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		items, err := store.ListItems(ctx, models.ItemFilter{PackID: pack.ID})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Expected items to be deleted, got %d", len(items))
		}
		if err := store.DeletePack(ctx, pack.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_Items(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pack := &models.Pack{Name: "Kitchen"}
	if err := store.CreatePack(ctx, pack); err != nil {
		t.Fatalf("CreatePack failed: %v", err)
	}

	t.Run("CreateItem with missing pack fails", func(t *testing.T) {
		err := store.CreateItem(ctx, &models.Item{PackID: 9999, Name: "Orphan", Price: 1})
		if !errors.Is(err, storage.ErrPackNotFound) {
			t.Errorf("Expected ErrPackNotFound, got %v", err)
		}
	})

	t.Run("create then read returns identical data", func(t *testing.T) {
		item := &models.Item{PackID: pack.ID, Name: "Pan", Price: 24.5}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		got, err := store.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if *got != *item {
			t.Errorf("Item mismatch: got %+v, want %+v", got, item)
		}
	})

	t.Run("duplicate name in same pack conflicts", func(t *testing.T) {
		err := store.CreateItem(ctx, &models.Item{PackID: pack.ID, Name: "Pan", Price: 3})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("UpsertItem with missing pack fails", func(t *testing.T) {
		_, err := store.UpsertItem(ctx, &models.Item{ID: 77, PackID: 9999, Name: "Orphan"})
		if !errors.Is(err, storage.ErrPackNotFound) {
			t.Errorf("Expected ErrPackNotFound, got %v", err)
		}
	})

	t.Run("UpsertItem creates with explicit ID", func(t *testing.T) {
		created, err := store.UpsertItem(ctx, &models.Item{ID: 77, PackID: pack.ID, Name: "Pot", Price: 30})
		if err != nil {
			t.Fatalf("UpsertItem failed: %v", err)
		}
		if !created {
			t.Error("Expected upsert to create")
		}
		got, err := store.GetItem(ctx, 77)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.Name != "Pot" {
			t.Errorf("Name mismatch: got %q", got.Name)
		}
	})

	t.Run("ListItems filters by pack", func(t *testing.T) {
		other := &models.Pack{Name: "Garage"}
		if err := store.CreatePack(ctx, other); err != nil {
			t.Fatalf("CreatePack failed: %v", err)
		}
		if err := store.CreateItem(ctx, &models.Item{PackID: other.ID, Name: "Wrench", Price: 9}); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		all, err := store.ListItems(ctx, models.ItemFilter{})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Expected 3 items, got %d", len(all))
		}
		kitchen, err := store.ListItems(ctx, models.ItemFilter{PackID: pack.ID})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(kitchen) != 2 {
			t.Errorf("Expected 2 kitchen items, got %d", len(kitchen))
		}
	})

	t.Run("DeleteItem", func(t *testing.T) {
		if err := store.DeleteItem(ctx, 77); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		if _, err := store.GetItem(ctx, 77); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteItem(ctx, 77); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestNew_MemoryDatabase(t *testing.T) {
	store, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("New(:memory:) failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if err := store.CreatePack(context.Background(), &models.Pack{Name: "Temp"}); err != nil {
		t.Errorf("CreatePack failed: %v", err)
	}
}

func TestSQLiteStore_CreatePackWithItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("stores pack and items together", func(t *testing.T) {
		pack := &models.Pack{Name: "Camp", Items: []models.Item{{Name: "Tent", Price: 120}, {Name: "Stove", Price: 45}}}
		if err := store.CreatePackWithItems(ctx, pack); err != nil {
			t.Fatalf("CreatePackWithItems failed: %v", err)
		}
		if pack.ID == 0 {
			t.Fatal("expected pack ID to be assigned")
		}
		for _, item := range pack.Items {
			if item.ID == 0 || item.PackID != pack.ID {
				t.Errorf("item not linked to pack: %+v", item)
			}
		}
		got, err := store.GetPack(ctx, pack.ID)
		if err != nil {
			t.Fatalf("GetPack failed: %v", err)
		}
		if len(got.Items) != 2 {
			t.Errorf("Expected 2 items, got %d", len(got.Items))
		}
	})

	t.Run("failing item rolls back the pack", func(t *testing.T) {
		pack := &models.Pack{Name: "Broken", Items: []models.Item{{Name: "Rope", Price: 5}, {Name: "Rope", Price: 6}}}
		err := store.CreatePackWithItems(ctx, pack)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}
		if pack.ID != 0 {
			t.Errorf("Expected pack ID to stay unset, got %d", pack.ID)
		}
		if _, err := store.GetPackByName(ctx, "Broken"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		items, err := store.ListItems(ctx, models.ItemFilter{})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		for _, item := range items {
			if item.Name == "Rope" {
				t.Errorf("orphaned item left behind: %+v", item)
			}
		}
	})
}
