// Package storage opens the configured session store backend.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decorimic/admin/internal/services/admin/session"
	adminstorage "github.com/decorimic/admin/internal/services/admin/storage"
	adminredis "github.com/decorimic/admin/internal/services/admin/storage/redis"
	adminsqlite "github.com/decorimic/admin/internal/services/admin/storage/sqlite"
)

// Config selects and configures a backend.
type Config struct {
	Backend       adminstorage.Backend
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// OpenStore opens the backend named by cfg. SQLite parent directories are
// created when needed.
func OpenStore(ctx context.Context, cfg Config) (adminstorage.Store, error) {
	switch adminstorage.Backend(strings.ToLower(strings.TrimSpace(string(cfg.Backend)))) {
	case "", adminstorage.BackendSQLite:
		return openSQLite(ctx, cfg.Path)
	case adminstorage.BackendRedis:
		store, err := adminredis.Open(ctx, adminredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("open admin redis store: %w", err)
		}
		return store, nil
	case adminstorage.BackendMemory:
		return memoryStore{session.NewMemoryStore()}, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Backend)
	}
}

func openSQLite(ctx context.Context, path string) (*adminsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := adminsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}

type memoryStore struct {
	*session.MemoryStore
}

func (memoryStore) Close() error { return nil }
