// Package admin parses console flags and launches the service.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	entrypoint "github.com/decorimic/admin/internal/platform/cmd"
	adminservice "github.com/decorimic/admin/internal/services/admin"
	adminstorage "github.com/decorimic/admin/internal/services/admin/integration/storage"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/storage"
)

// Config holds the console command configuration.
type Config struct {
	HTTPAddr   string        `env:"IMIC_ADMIN_ADDR" envDefault:":8082"`
	APIBaseURL string        `env:"IMIC_ADMIN_API_BASE_URL" envDefault:"https://www.test.nia.com.eg/imic/public/api"`
	APITimeout time.Duration `env:"IMIC_ADMIN_API_TIMEOUT" envDefault:"10s"`

	Username      string        `env:"IMIC_ADMIN_USERNAME" envDefault:"admin"`
	Password      string        `env:"IMIC_ADMIN_PASSWORD"`
	PasswordHash  string        `env:"IMIC_ADMIN_PASSWORD_HASH"`
	SessionSecret string        `env:"IMIC_ADMIN_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"IMIC_ADMIN_SESSION_TTL" envDefault:"12h"`

	SessionStore  string `env:"IMIC_ADMIN_SESSION_STORE" envDefault:"sqlite"`
	DBPath        string `env:"IMIC_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	RedisAddr     string `env:"IMIC_ADMIN_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"IMIC_ADMIN_REDIS_PASSWORD"`
	RedisDB       int    `env:"IMIC_ADMIN_REDIS_DB" envDefault:"0"`

	CookieSecure   bool     `env:"IMIC_ADMIN_COOKIE_SECURE" envDefault:"false"`
	TrustedProxies []string `env:"IMIC_ADMIN_TRUSTED_PROXIES" envSeparator:","`
	LogLevel       string   `env:"IMIC_ADMIN_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint   string   `env:"IMIC_ADMIN_OTEL_ENDPOINT"`
	OTelEnabled    bool     `env:"IMIC_ADMIN_OTEL_ENABLED" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "content API base URL")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "session store backend: sqlite, redis or memory")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite session database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if secret := cfg.SessionSecret; secret != "" && len(secret) < 32 {
		return Config{}, errors.New("IMIC_ADMIN_SESSION_SECRET must be at least 32 bytes")
	}
	if _, err := adminservice.ParseTrustedProxies(cfg.TrustedProxies); err != nil {
		return Config{}, fmt.Errorf("IMIC_ADMIN_TRUSTED_PROXIES: %w", err)
	}
	return cfg, nil
}

// ServerConfig maps the command configuration onto the service.
func (c Config) ServerConfig(logOut io.Writer) adminservice.Config {
	return adminservice.Config{
		HTTPAddr:   c.HTTPAddr,
		APIBaseURL: c.APIBaseURL,
		APITimeout: c.APITimeout,
		Credentials: session.Credentials{
			Username:     c.Username,
			Password:     c.Password,
			PasswordHash: c.PasswordHash,
		},
		SessionSecret: []byte(c.SessionSecret),
		SessionTTL:    c.SessionTTL,
		Storage: adminstorage.Config{
			Backend:       storage.Backend(c.SessionStore),
			Path:          c.DBPath,
			RedisAddr:     c.RedisAddr,
			RedisPassword: c.RedisPassword,
			RedisDB:       c.RedisDB,
		},
		CookieSecure:   c.CookieSecure,
		TrustedProxies: c.TrustedProxies,
		Logger:         entrypoint.NewLogger(logOut, c.LogLevel),
	}
}

// Run starts the console server.
func Run(ctx context.Context, cfg Config) error {
	serverCfg := cfg.ServerConfig(os.Stderr)
	telemetry := entrypoint.TelemetryOptions{
		Service:  entrypoint.ServiceAdmin,
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
	}
	return entrypoint.RunWithTelemetry(ctx, telemetry, serverCfg.Logger, func(ctx context.Context) error {
		server, err := adminservice.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer func() {
			if err := server.Close(); err != nil {
				serverCfg.Logger.Warn("close admin server", "error", err)
			}
		}()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}
