// Package storage provides small key-value stores for client state such as favorites.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a key-value store. Get reports false when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultPath returns the store location under the user's home directory.
func DefaultPath(backend string) string {
	name := "state.json"
	if backend == BackendSQLite {
		name = "state.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".careersuite", name)
}

// Open creates the store for backend at path. An empty path uses DefaultPath.
func Open(backend, path string) (Store, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendFile
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(backend)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", filepath.Dir(path), err)
	}

	switch backend {
	case BackendFile:
		return NewFile(path), nil
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q (valid: %s, %s)", backend, BackendFile, BackendSQLite)
	}
}
