// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The filename names the secret and the trimmed file contents are its
// value, so keys never have to live in forkify.yaml or the environment.
//
// Recognized names: forkify-api-key, forkify-redis-url.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory, relative to the working directory.
const DefaultDir = ".secrets"

// Names of the secrets forkify reads.
const (
	APIKeyName   = "forkify-api-key"
	RedisURLName = "forkify-redis-url"
)

// Secrets maps a secret name to its value.
type Secrets map[string]string

// APIKey is the recipe API key, or "".
func (s Secrets) APIKey() string { return s[APIKeyName] }

// RedisURL is the Redis connection URL for the redis storage backend, or "".
func (s Secrets) RedisURL() string { return s[RedisURLName] }

// Load reads every regular, non-hidden file in dir. A missing directory
// yields no secrets. Files that cannot be read or hold only whitespace are
// skipped; unreadable ones are logged.
func Load(dir string, log *slog.Logger) (Secrets, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := Secrets{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping unreadable secret", "name", name, "err", err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}
	return out, nil
}
