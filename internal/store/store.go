// Package store implements the key-value persistence substrate.
//
// Keys and values are strings; every write replaces the whole value stored
// under a key. Three backends are provided: an in-process map, a single JSON
// file, and a sqlite table.
package store

import (
	"context"
	"fmt"

	"todomaster/internal/config"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns all keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// Open creates the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	log := cfg.Logger()

	switch cfg.Backend {
	case config.BackendMemory:
		log.Debug("opening memory store")
		return NewMemory(), nil

	case config.BackendFile, "":
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		log.Debug("opening file store")
		return OpenFile(cfg.DataFilePath(), log)

	case config.BackendSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		log.Debug("opening sqlite store")
		return OpenSQLite(ctx, cfg.DatabasePath(), log)

	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
