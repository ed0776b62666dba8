// Package modulehandler provides the shared scaffold embedded by console
// screen handlers: localization, page rendering, notices and error pages.
package modulehandler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/services/admin/flash"
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Base carries the request-scoped helpers shared by screen handlers.
type Base struct {
	logger       *slog.Logger
	cookieSecure bool
}

// NewBase builds a handler base.
func NewBase(logger *slog.Logger, cookieSecure bool) Base {
	if logger == nil {
		logger = slog.Default()
	}
	return Base{logger: logger, cookieSecure: cookieSecure}
}

// Page describes one rendered response.
type Page struct {
	Title      string
	StatusCode int
	// Toast overrides any pending flash notice.
	Toast    *templates.Toast
	Fragment templ.Component
	// Public selects the unauthenticated layout.
	Public bool
}

// Logger returns the base logger.
func (b Base) Logger() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// CookieSecure reports whether cookies are marked Secure.
func (b Base) CookieSecure() bool {
	return b.cookieSecure
}

// Translator returns the translator for the request language.
func (b Base) Translator(r *http.Request) *i18n.Translator {
	return i18n.NewTranslator(i18n.LanguageFromContext(requestContext(r)))
}

// PageContext builds the layout context for r.
func (b Base) PageContext(r *http.Request, title string) templates.PageContext {
	tr := b.Translator(r)
	page := templates.PageContext{
		Lang:  tr.Language(),
		Loc:   tr,
		Title: title,
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	if sess, ok := session.FromContext(requestContext(r)); ok {
		page.Username = sess.Username
	}
	return page
}

// Toast renders a notice in the request language.
func (b Base) Toast(r *http.Request, notice flash.Notice) *templates.Toast {
	tr := b.Translator(r)
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, tr.T(arg))
	}
	var message string
	if len(args) == 0 {
		message = tr.T(notice.Key)
	} else {
		message = tr.Sprintf(notice.Key, args...)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	return &templates.Toast{Kind: string(notice.Kind), Message: message}
}

// Flash stores a notice for the next page render.
func (b Base) Flash(w http.ResponseWriter, notice flash.Notice) {
	flash.Write(w, notice, b.cookieSecure)
}

// Redirect answers with 303 See Other.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// WritePage renders page inside the console chrome.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page Page) {
	if w == nil {
		return
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	pc := b.PageContext(r, page.Title)
	if notice, ok := flash.ReadAndClear(w, r, b.cookieSecure); ok {
		pc.Toast = b.Toast(r, notice)
	}
	if page.Toast != nil {
		pc.Toast = page.Toast
	}

	layout := templates.Layout(pc)
	if page.Public {
		layout = templates.PublicLayout(pc)
	}
	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(requestContext(r), fragment), &buf); err != nil {
		b.Logger().ErrorContext(requestContext(r), "render page", "path", pc.CurrentPath, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	b.WriteStatusPage(w, r, http.StatusNotFound)
}

// WriteStatusPage renders a 404 or 500 page. Other statuses render as 500.
func (b Base) WriteStatusPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	if statusCode != http.StatusNotFound {
		statusCode = http.StatusInternalServerError
	}
	pc := b.PageContext(r, "")
	backURL := routepath.Root
	public := true
	if pc.Username != "" {
		backURL = routepath.Admin
		public = false
	}
	b.WritePage(w, r, Page{
		Title:      templates.ErrorPageTitle(pc, statusCode),
		StatusCode: statusCode,
		Fragment:   templates.ErrorState(pc, statusCode, backURL),
		Public:     public,
	})
}

// WriteError logs err and renders the matching error page. Missing upstream
// records render as 404.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.CodeOf(err) == apperrors.CodeNotFound {
		b.WriteNotFound(w, r)
		return
	}
	b.Logger().ErrorContext(requestContext(r), "request failed", "path", requestPath(r), "error", err)
	b.WriteStatusPage(w, r, http.StatusInternalServerError)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
