package templates

import (
	"net/http"

	"github.com/a-h/templ"
)

// Landing is the public home page.
func Landing(page PageContext) templ.Component {
	return view("landing", struct{ Page PageContext }{page})
}

// LoginView carries the login form state.
type LoginView struct {
	Action   string
	Next     string
	Username string
	Error    string
}

// Login is the sign-in form.
func Login(page PageContext, v LoginView) templ.Component {
	return view("login", struct {
		Page PageContext
		View LoginView
	}{page, v})
}

// ErrorPageTitle returns the localized title of an error page.
func ErrorPageTitle(page PageContext, status int) string {
	if status == http.StatusNotFound {
		return page.T("page.notFound")
	}
	return page.T("page.serverError")
}

// ErrorState is the body of 404 and 500 pages.
func ErrorState(page PageContext, status int, backURL string) templ.Component {
	return view("error", struct {
		Page    PageContext
		Status  int
		Title   string
		BackURL string
	}{page, status, ErrorPageTitle(page, status), backURL})
}
