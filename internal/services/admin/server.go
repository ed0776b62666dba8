package admin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/decorimic/admin/internal/platform/timeouts"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	adminstorage "github.com/decorimic/admin/internal/services/admin/integration/storage"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/storage"
)

// defaultSweepInterval is how often expired sessions are purged.
const defaultSweepInterval = 15 * time.Minute

// Config defines the inputs for the console process.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	APITimeout time.Duration

	Credentials session.Credentials
	// SessionSecret signs session tokens. When empty a random secret is
	// generated and sessions do not survive a restart.
	SessionSecret []byte
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Storage       adminstorage.Config

	CookieSecure bool
	// TrustedProxies lists proxy addresses or CIDR ranges whose
	// X-Forwarded-For header identifies the client.
	TrustedProxies []string
	Logger         *slog.Logger
}

// Server hosts the console and owns its session store.
type Server struct {
	httpAddr      string
	httpServer    *http.Server
	store         storage.Store
	sessions      *session.Manager
	sweepInterval time.Duration
	logger        *slog.Logger
}

// NewServer builds a configured console server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	proxies, err := ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	secret := cfg.SessionSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		logger.WarnContext(ctx, "no session secret configured; sessions end on restart")
	}

	client, err := contentapi.NewClient(cfg.APIBaseURL, contentapi.Options{
		Timeout: cfg.APITimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	store, err := adminstorage.OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewManager(session.ManagerConfig{
		Store:       store,
		Secret:      secret,
		Credentials: cfg.Credentials,
		TTL:         cfg.SessionTTL,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	handler, err := NewHandler(HandlerConfig{
		Logger:         logger,
		API:            contentapi.NewAPI(client),
		Sessions:       sessions,
		CookieSecure:   cfg.CookieSecure,
		TrustedProxies: proxies,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
		},
		store:         store,
		sessions:      sessions,
		sweepInterval: sweepInterval,
		logger:        logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLoop(sweepCtx)

	serveErr := make(chan error, 1)
	s.logger.InfoContext(ctx, "admin listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.Sweep(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "sweep expired sessions", "error", err)
				continue
			}
			if removed > 0 {
				s.logger.DebugContext(ctx, "swept expired sessions", "removed", removed)
			}
		}
	}
}

// Close releases the session store.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close session store: %w", err)
	}
	return nil
}
