// Package httpmux mounts console route groups onto the root mux.
package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/decorimic/admin/internal/services/admin/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withHeaders func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withHeaders != nil {
		staticHandler = withHeaders(staticHandler)
	}
	rootMux.Handle(http.MethodGet+" "+routepath.StaticPrefix, staticHandler)
}

// MountAdminRoutes hands the admin root and everything under it to admin.
func MountAdminRoutes(rootMux *http.ServeMux, admin http.Handler) {
	if rootMux == nil || admin == nil {
		return
	}
	rootMux.Handle(routepath.Admin, admin)
	rootMux.Handle(routepath.AdminPrefix, admin)
}
