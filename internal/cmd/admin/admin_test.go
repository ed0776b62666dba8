package admin

import (
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/decorimic/admin/internal/services/admin/storage"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8082" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.SessionStore != "sqlite" || cfg.DBPath != "data/admin.db" {
		t.Fatalf("store = %q %q", cfg.SessionStore, cfg.DBPath)
	}
	if cfg.Username != "admin" {
		t.Fatalf("Username = %q", cfg.Username)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IMIC_ADMIN_ADDR", "env:9000")
	t.Setenv("IMIC_ADMIN_API_BASE_URL", "http://content.local/api")
	t.Setenv("IMIC_ADMIN_SESSION_TTL", "30m")
	t.Setenv("IMIC_ADMIN_SESSION_STORE", "redis")
	t.Setenv("IMIC_ADMIN_REDIS_DB", "3")
	t.Setenv("IMIC_ADMIN_TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag:9100"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag:9100" {
		t.Fatalf("HTTPAddr = %q, want flag override", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://content.local/api" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("SessionTTL = %v", cfg.SessionTTL)
	}

	server := cfg.ServerConfig(io.Discard)
	if server.Storage.Backend != storage.BackendRedis || server.Storage.RedisDB != 3 {
		t.Fatalf("storage = %+v", server.Storage)
	}
	if server.Logger == nil {
		t.Fatal("logger not built")
	}
	if got := strings.Join(server.TrustedProxies, ","); got != "10.0.0.0/8,127.0.0.1" {
		t.Fatalf("TrustedProxies = %q", got)
	}
}

func TestParseConfigRejectsShortSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IMIC_ADMIN_SESSION_SECRET", "short")
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	_, err := ParseConfig(fs, nil)
	if err == nil || !strings.Contains(err.Error(), "32 bytes") {
		t.Fatalf("err = %v, want short secret error", err)
	}
}

func TestParseConfigRejectsBadTrustedProxy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IMIC_ADMIN_TRUSTED_PROXIES", "10.0.0.0/8,not-an-ip")
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	_, err := ParseConfig(fs, nil)
	if err == nil || !strings.Contains(err.Error(), "IMIC_ADMIN_TRUSTED_PROXIES") {
		t.Fatalf("err = %v, want trusted proxy error", err)
	}
}
