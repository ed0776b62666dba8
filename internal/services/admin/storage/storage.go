package storage

import (
	"github.com/decorimic/admin/internal/services/admin/session"
)

// Backend names a session store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Store is the composite contract every backend satisfies.
type Store interface {
	session.Store
	Close() error
}
