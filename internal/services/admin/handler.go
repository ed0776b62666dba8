package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"net/netip"

	"golang.org/x/time/rate"

	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/aboutus"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/module/screens"
	"github.com/decorimic/admin/internal/services/admin/observability"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/static"
	"github.com/decorimic/admin/internal/services/admin/transport/httpmux"
)

// HandlerConfig wires the console HTTP handler.
type HandlerConfig struct {
	Logger   *slog.Logger
	API      *contentapi.API
	Sessions SessionManager
	// CookieSecure marks every cookie Secure; enable behind TLS.
	CookieSecure bool
	// LoginRate and LoginBurst throttle sign-in attempts per client.
	// Zero values use the defaults.
	LoginRate  rate.Limit
	LoginBurst int
	// TrustedProxies may set X-Forwarded-For for throttling purposes.
	TrustedProxies []netip.Prefix
}

// NewHandler builds the full console: public pages, the session-guarded
// admin screens and the shared middleware stack.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	if cfg.API == nil {
		return nil, errors.New("content api is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := modulehandler.NewBase(logger, cfg.CookieSecure)
	public := &publicHandlers{
		Base:     base,
		sessions: cfg.Sessions,
		limiter:  newLoginLimiter(cfg.LoginRate, cfg.LoginBurst, cfg.TrustedProxies),
	}

	adminMux := http.NewServeMux()
	screens.RegisterRoutes(adminMux, base, cfg.API)
	aboutus.RegisterRoutes(adminMux, aboutus.NewHandler(base, cfg.API.AboutUs, crud.NewValidator(), crud.NewGate()))
	adminMux.HandleFunc(routepath.AdminPrefix, public.handleNotFound)

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS, withStaticHeaders)
	rootMux.HandleFunc(http.MethodGet+" /{$}", public.handleLanding)
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Healthz, public.handleHealthz)
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Login, public.handleLoginPage)
	rootMux.HandleFunc(http.MethodPost+" "+routepath.Login, public.handleLogin)
	rootMux.HandleFunc(http.MethodPost+" "+routepath.Logout, public.handleLogout)
	httpmux.MountAdminRoutes(rootMux, requireAuth(adminMux, cfg.Sessions, cfg.CookieSecure, logger))
	rootMux.HandleFunc(routepath.Root, public.handleNotFound)

	return wrap(rootMux, base), nil
}

// wrap applies the middleware shared by every route.
func wrap(handler http.Handler, base modulehandler.Base) http.Handler {
	logger := base.Logger()
	return observability.Chain(handler,
		observability.RequestID(),
		observability.RequestLogger(logger),
		observability.Trace(),
		withLanguage(base.CookieSecure()),
		observability.RecoverPanic(logger, func(w http.ResponseWriter, r *http.Request) {
			base.WriteStatusPage(w, r, http.StatusInternalServerError)
		}),
		requireSameOrigin(base),
	)
}

func withStaticHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
