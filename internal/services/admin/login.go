package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/decorimic/admin/internal/services/admin/flash"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/sessioncookie"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// SessionManager is the session surface the console needs.
type SessionManager interface {
	Authenticator
	Login(ctx context.Context, username, password string) (session.Session, string, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

// publicHandlers serves the pages reachable without a session.
type publicHandlers struct {
	modulehandler.Base
	sessions SessionManager
	limiter  *loginLimiter
}

func (h *publicHandlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	tr := h.Translator(r)
	h.WritePage(w, r, modulehandler.Page{
		Title:    tr.T("app.name"),
		Fragment: templates.Landing(h.PageContext(r, tr.T("app.name"))),
		Public:   true,
	})
}

func (h *publicHandlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *publicHandlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if token, ok := sessioncookie.Read(r); ok {
		if _, err := h.sessions.Authenticate(r.Context(), token); err == nil {
			h.Redirect(w, r, routepath.SafeNext(next))
			return
		}
	}
	h.writeLogin(w, r, http.StatusOK, templates.LoginView{Next: next})
}

func (h *publicHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeLogin(w, r, http.StatusBadRequest, templates.LoginView{})
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")
	view := templates.LoginView{Next: next, Username: username}

	if !h.limiter.Allow(r) {
		h.Logger().WarnContext(r.Context(), "login throttled", "client", clientIP(r, h.limiter.proxies))
		view.Error = h.Translator(r).T("login.tooMany")
		h.writeLogin(w, r, http.StatusTooManyRequests, view)
		return
	}

	sess, token, err := h.sessions.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.Logger().InfoContext(r.Context(), "login rejected", "username", username)
			view.Error = h.Translator(r).T("login.invalid")
			h.writeLogin(w, r, http.StatusUnauthorized, view)
			return
		}
		h.WriteError(w, r, err)
		return
	}

	h.Logger().InfoContext(r.Context(), "operator signed in", "username", sess.Username, "session_id", sess.ID)
	sessioncookie.Write(w, token, h.sessions.TTL(), h.CookieSecure())
	h.Flash(w, flash.Success("login.welcome"))
	h.Redirect(w, r, routepath.SafeNext(next))
}

func (h *publicHandlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok {
		if err := h.sessions.Logout(r.Context(), token); err != nil {
			h.Logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	sessioncookie.Clear(w, h.CookieSecure())
	h.Redirect(w, r, routepath.Login)
}

func (h *publicHandlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h *publicHandlers) writeLogin(w http.ResponseWriter, r *http.Request, status int, view templates.LoginView) {
	tr := h.Translator(r)
	view.Action = routepath.Login
	h.WritePage(w, r, modulehandler.Page{
		Title:      tr.T("login.title"),
		StatusCode: status,
		Fragment:   templates.Login(h.PageContext(r, tr.T("login.title")), view),
		Public:     true,
	})
}
