package templates

import (
	"strings"

	"github.com/decorimic/admin/internal/services/admin/i18n"
)

// PageContext provides shared layout context for console pages.
type PageContext struct {
	Lang         i18n.Language
	Loc          Localizer
	Title        string
	CurrentPath  string
	CurrentQuery string
	// Username is empty on public pages.
	Username string
	Toast    *Toast
}

// Toast is a one-time notice rendered at the top of the page.
type Toast struct {
	Kind    string
	Message string
}

// T translates key for the page language.
func (p PageContext) T(key string, args ...any) string {
	return T(p.Loc, key, args...)
}

// HTMLLang returns the html lang attribute.
func (p PageContext) HTMLLang() string {
	if p.Lang == "" {
		return string(i18n.Default())
	}
	return string(p.Lang)
}

// Dir returns the html dir attribute.
func (p PageContext) Dir() string {
	return p.Lang.Dir()
}

// DocumentTitle composes the browser title.
func (p PageContext) DocumentTitle() string {
	appName := p.T("app.name")
	title := strings.TrimSpace(p.Title)
	if title == "" || title == appName {
		return appName
	}
	return title + " | " + appName
}
