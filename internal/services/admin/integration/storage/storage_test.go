package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/decorimic/admin/internal/services/admin/session"
	adminstorage "github.com/decorimic/admin/internal/services/admin/storage"
)

func TestOpenStoreCreatesDirectoryAndOpensDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "admin.db")
	store, err := OpenStore(context.Background(), Config{Backend: adminstorage.BackendSQLite, Path: dbPath})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file: %v", err)
	}
}

func TestOpenStoreDefaultsToSQLite(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(context.Background(), Config{Path: filepath.Join(t.TempDir(), "admin.db")})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()
	if _, ok := store.(session.Sweeper); !ok {
		t.Fatal("expected sqlite store to sweep expired sessions")
	}
}

func TestOpenStoreReturnsWrappedErrorWhenDirectoryCreationFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blockingFile := filepath.Join(root, "not-a-dir")
	if err := os.WriteFile(blockingFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	dbPath := filepath.Join(blockingFile, "nested", "admin.db")

	_, err := OpenStore(context.Background(), Config{Path: dbPath})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "create storage dir") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenStoreReturnsWrappedErrorWhenSQLiteOpenFails(t *testing.T) {
	t.Parallel()

	// A directory path makes the sqlite open fail deterministically.
	_, err := OpenStore(context.Background(), Config{Path: t.TempDir()})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "open admin sqlite store") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := OpenStore(context.Background(), Config{Backend: adminstorage.BackendRedis, RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.PutSession(context.Background(), session.Session{ID: "r1", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("put session: %v", err)
	}
	if !mr.Exists("imic:session:r1") {
		t.Fatal("expected redis key")
	}
}

func TestOpenStoreMemory(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(context.Background(), Config{Backend: adminstorage.BackendMemory})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	if _, err := OpenStore(context.Background(), Config{Backend: "mongo"}); err == nil {
		t.Fatal("expected error")
	}
}
