// Package screens declares the content resources served by the generic
// crud screen.
package screens

import (
	"net/http"
	"time"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// RegisterRoutes wires every resource screen into mux. Screens share one
// validator and one mutation gate.
func RegisterRoutes(mux *http.ServeMux, base modulehandler.Base, api *contentapi.API) {
	if mux == nil || api == nil {
		return
	}
	validator := crud.NewValidator()
	gate := crud.NewGate()
	crud.RegisterRoutes(mux, crud.NewScreen(base, Services(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, WhyUs(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, Clients(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, Categories(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, Projects(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, News(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, Testimonials(api), validator, gate))
	crud.RegisterRoutes(mux, crud.NewScreen(base, Messages(api), validator, gate))
}

// pick returns the value for lang.
func pick(lang i18n.Language, en, ar string) string {
	if lang == i18n.Arabic {
		return ar
	}
	return en
}

func text[T any](labelKey, suffix string, value func(T) string) crud.Column[T] {
	return crud.Column[T]{
		LabelKey: labelKey,
		Suffix:   suffix,
		Cell: func(rec T, _ crud.RenderContext) templates.Cell {
			return templates.Cell{Text: value(rec)}
		},
	}
}

func image[T any](labelKey string, value func(T) string) crud.Column[T] {
	return crud.Column[T]{
		LabelKey: labelKey,
		Cell: func(rec T, rc crud.RenderContext) templates.Cell {
			if src := value(rec); src != "" {
				return templates.Cell{Image: src}
			}
			return templates.Cell{Text: rc.Tr.T("field.noImage")}
		},
	}
}

func createdAt[T any](value func(T) string) crud.Column[T] {
	return text("createdAt", "", func(rec T) string {
		return formatDate(value(rec))
	})
}

// formatDate shortens API timestamps to a calendar date.
func formatDate(value string) string {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format(time.DateOnly)
		}
	}
	return value
}

func bilingualText(name, labelKey, kind string, required bool) []crud.Field {
	return []crud.Field{
		{Name: name + "_en", LabelKey: labelKey, Kind: kind, Tab: i18n.English, Required: required},
		{Name: name + "_ar", LabelKey: labelKey, Kind: kind, Tab: i18n.Arabic, Required: required},
	}
}

func media(field, value string) map[string][]string {
	if value == "" {
		return nil
	}
	return map[string][]string{field: {value}}
}

const (
	suffixEN = " (EN)"
	suffixAR = " (AR)"
)
