// Package seed creates the initial packs shipped with the service.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

//go:embed packs.yaml
var defaultPacks []byte

// File is the layout of a seed document.
type File struct {
	Packs []PackSeed `yaml:"packs"`
}

// PackSeed describes one pack and its items.
type PackSeed struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Items       []ItemSeed `yaml:"items"`
}

// ItemSeed describes one item.
type ItemSeed struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

// Store is the subset of storage.Store that seeding uses.
type Store interface {
	GetPackByName(ctx context.Context, name string) (*models.Pack, error)
	CreatePackWithItems(ctx context.Context, pack *models.Pack) error
}

// Result counts what a seeding run created.
type Result struct {
	PacksCreated int
	ItemsCreated int
}

// Default returns the embedded seed document.
func Default() (File, error) {
	return Parse(defaultPacks)
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	for i, p := range f.Packs {
		if p.Name == "" {
			return File{}, fmt.Errorf("seed pack %d has no name", i)
		}
		seen := make(map[string]bool, len(p.Items))
		for _, item := range p.Items {
			if item.Name == "" || item.Price < 0 {
				return File{}, fmt.Errorf("seed pack %q has an invalid item %+v", p.Name, item)
			}
			if seen[item.Name] {
				return File{}, fmt.Errorf("seed pack %q lists item %q twice", p.Name, item.Name)
			}
			seen[item.Name] = true
		}
	}
	return f, nil
}

// Seed creates every pack in f that does not exist yet, together with its items.
// Each pack is written atomically with its items, and existing packs are left
// untouched, so running it repeatedly is safe.
func Seed(ctx context.Context, store Store, f File) (Result, error) {
	var res Result
	for _, p := range f.Packs {
		_, err := store.GetPackByName(ctx, p.Name)
		if err == nil {
			slog.Debug("Seed pack exists", "name", p.Name)
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return res, fmt.Errorf("look up seed pack %q: %w", p.Name, err)
		}

		pack := &models.Pack{Name: p.Name, Description: p.Description}
		for _, it := range p.Items {
			pack.Items = append(pack.Items, models.Item{Name: it.Name, Price: it.Price})
		}
		if err := store.CreatePackWithItems(ctx, pack); err != nil {
			return res, fmt.Errorf("create seed pack %q: %w", p.Name, err)
		}
		res.PacksCreated++
		res.ItemsCreated += len(pack.Items)
	}

	slog.Info("Seeding complete", "packs_created", res.PacksCreated, "items_created", res.ItemsCreated)
	return res, nil
}
