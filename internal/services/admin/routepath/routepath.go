// Package routepath holds the admin console URL layout.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Healthz      = "/healthz"
)

const (
	Login  = "/login"
	Logout = "/logout"
)

const (
	Admin       = "/admin"
	AdminPrefix = "/admin/"
	AboutUs     = "/admin/about"
	AboutUsEdit = "/admin/about/edit"
)

// Resource slugs under AdminPrefix.
const (
	SlugServices     = "services"
	SlugWhyUs        = "why-choose-us"
	SlugClients      = "clients"
	SlugCategories   = "categories"
	SlugProjects     = "projects"
	SlugNews         = "news"
	SlugTestimonials = "testimonials"
	SlugMessages     = "messages"
)

// Pattern suffixes for resource item routes.
const (
	IDParam = "id"
	itemTpl = "/{" + IDParam + "}"
)

// Resource returns the collection route of slug.
func Resource(slug string) string {
	return AdminPrefix + escapeSegment(slug)
}

// ResourceNew returns the create form route.
func ResourceNew(slug string) string {
	return Resource(slug) + "/new"
}

// ResourceItem returns the detail/update route of one record.
func ResourceItem(slug string, id int64) string {
	return Resource(slug) + "/" + strconv.FormatInt(id, 10)
}

// ResourceEdit returns the edit form route of one record.
func ResourceEdit(slug string, id int64) string {
	return ResourceItem(slug, id) + "/edit"
}

// ResourceDelete returns the delete confirmation route of one record.
func ResourceDelete(slug string, id int64) string {
	return ResourceItem(slug, id) + "/delete"
}

// ResourceItemPattern is the ServeMux pattern matching ResourceItem.
func ResourceItemPattern(slug string) string {
	return Resource(slug) + itemTpl
}

// ResourceEditPattern is the ServeMux pattern matching ResourceEdit.
func ResourceEditPattern(slug string) string {
	return ResourceItemPattern(slug) + "/edit"
}

// ResourceDeletePattern is the ServeMux pattern matching ResourceDelete.
func ResourceDeletePattern(slug string) string {
	return ResourceItemPattern(slug) + "/delete"
}

// LoginWithNext returns the login route that redirects to next afterwards.
func LoginWithNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || next == Admin {
		return Login
	}
	return Login + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local admin path, otherwise Admin.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return Admin
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return Admin
	}
	if parsed.Path != Admin && !strings.HasPrefix(parsed.Path, AdminPrefix) {
		return Admin
	}
	return parsed.RequestURI()
}

func escapeSegment(value string) string {
	return url.PathEscape(value)
}
