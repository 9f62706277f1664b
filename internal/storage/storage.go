// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage provides the key/value local storage that persists
// bookmarks between runs. It mirrors the browser localStorage contract:
// string keys, string values, synchronous overwrite on every write.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/forkify/pkg/types"
)

// Storage is a string key/value store.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key
	// has never been written.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem overwrites the value stored under key.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	Close() error
}

// DefaultPath returns the default location for file-backed storage:
// $XDG_DATA_HOME/forkify/<name>, falling back to ~/.local/share.
func DefaultPath(name string) string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return name
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "forkify", name)
}

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg types.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case types.StorageSQLite, "":
		path := cfg.Path
		if path == "" {
			path = DefaultPath("forkify.db")
		}
		return NewSQLite(path)
	case types.StorageFile:
		path := cfg.Path
		if path == "" {
			path = DefaultPath("storage.json")
		}
		return NewFile(path)
	case types.StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("storage backend redis requires redis_url")
		}
		return NewRedis(ctx, cfg.RedisURL, cfg.Namespace)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q: use sqlite, file, or redis", cfg.Backend)
	}
}
