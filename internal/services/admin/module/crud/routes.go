package crud

import (
	"net/http"

	"github.com/decorimic/admin/internal/services/admin/routepath"
)

// Service defines the resource route handlers consumed by RegisterRoutes.
type Service interface {
	Slug() string
	ListPath() string
	Editable() bool
	HasDetail() bool
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleNew(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleEdit(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleDetail(w http.ResponseWriter, r *http.Request)
	HandleDeleteConfirm(w http.ResponseWriter, r *http.Request)
	HandleDelete(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires one resource's routes into the provided mux. Create
// and edit routes exist only for editable resources.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	slug := service.Slug()
	collection := routepath.Resource(slug)

	mux.HandleFunc(http.MethodGet+" "+collection, service.HandleList)
	if listPath := service.ListPath(); listPath != collection {
		mux.HandleFunc(http.MethodGet+" "+listPath, service.HandleList)
	}
	if service.Editable() {
		mux.HandleFunc(http.MethodGet+" "+routepath.ResourceNew(slug), service.HandleNew)
		mux.HandleFunc(http.MethodPost+" "+collection, service.HandleCreate)
		mux.HandleFunc(http.MethodGet+" "+routepath.ResourceEditPattern(slug), service.HandleEdit)
		mux.HandleFunc(http.MethodPost+" "+routepath.ResourceItemPattern(slug), service.HandleUpdate)
	}
	if service.HasDetail() {
		mux.HandleFunc(http.MethodGet+" "+routepath.ResourceItemPattern(slug), service.HandleDetail)
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ResourceDeletePattern(slug), service.HandleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.ResourceDeletePattern(slug), service.HandleDelete)
}
