package admin

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/platform/requestctx"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/sessioncookie"
)

// Authenticator resolves a session cookie token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

// requireAuth admits requests carrying a live session cookie and sends every
// other request to the login page, remembering where it was headed.
func requireAuth(next http.Handler, sessions Authenticator, cookieSecure bool, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := sessioncookie.Read(r)
		if !ok {
			http.Redirect(w, r, routepath.LoginWithNext(loginNext(r)), http.StatusFound)
			return
		}
		sess, err := sessions.Authenticate(r.Context(), token)
		if err != nil {
			if apperrors.CodeOf(err) != apperrors.CodeUnauthenticated {
				logger.WarnContext(r.Context(), "session lookup failed", "error", err)
			}
			sessioncookie.Clear(w, cookieSecure)
			http.Redirect(w, r, routepath.LoginWithNext(loginNext(r)), http.StatusFound)
			return
		}

		ctx := session.WithSession(r.Context(), sess)
		ctx = requestctx.WithUsername(ctx, sess.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loginNext is the page to return to after signing in. Only GET targets are
// remembered; a form post cannot be replayed by a redirect.
func loginNext(r *http.Request) string {
	if r.Method != http.MethodGet {
		return ""
	}
	return r.URL.RequestURI()
}

// requireSameOrigin rejects unsafe requests whose Origin or Referer does not
// name this host.
func requireSameOrigin(base modulehandler.Base) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) || hasSameOriginProof(r) {
				next.ServeHTTP(w, r)
				return
			}
			base.Logger().WarnContext(r.Context(), "cross-origin request rejected",
				"method", r.Method, "path", r.URL.Path, "origin", r.Header.Get("Origin"))
			tr := base.Translator(r)
			http.Error(w, tr.T(apperrors.CodeForbidden.MessageKey()), apperrors.CodeForbidden.HTTPStatus())
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func hasSameOriginProof(r *http.Request) bool {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return sameOrigin(origin, r)
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		return sameOrigin(referer, r)
	}
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
