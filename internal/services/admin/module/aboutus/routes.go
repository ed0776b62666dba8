package aboutus

import (
	"net/http"

	"github.com/decorimic/admin/internal/services/admin/routepath"
)

// Service defines the profile route handlers consumed by RegisterRoutes.
type Service interface {
	HandlePage(w http.ResponseWriter, r *http.Request)
	HandleEdit(w http.ResponseWriter, r *http.Request)
	HandleSave(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the profile routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AboutUs, service.HandlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.AboutUsEdit, service.HandleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AboutUs, service.HandleSave)
}
