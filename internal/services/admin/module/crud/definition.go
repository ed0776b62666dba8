// Package crud serves one schema-driven list/create/edit/delete screen per
// content resource. Each resource supplies a Definition; the Screen renders
// it and talks to the content API through the definition's repository.
package crud

import (
	"context"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Writer is the write surface of editable resources.
type Writer interface {
	Create(ctx context.Context, form *contentapi.Form) (contentapi.Ack, error)
	Update(ctx context.Context, id int64, form *contentapi.Form) (contentapi.Ack, error)
}

// Field describes one form input.
type Field struct {
	Name     string
	LabelKey string
	// Kind is one of the templates.Field* kinds.
	Kind string
	// Tab places the field under a language tab; empty means shared.
	Tab      i18n.Language
	Required bool
	// Rule is an extra validator tag such as "oneof=a b" or "min=1,max=5".
	Rule string
	// Integer parses the value as a whole number before validation.
	Integer bool
	// MessageKey explains a Rule failure; required failures use "required".
	MessageKey     string
	PlaceholderKey string
	Options        func(ctx context.Context, tr *i18n.Translator) ([]templates.Option, error)
}

// IsFile reports whether the field is an upload.
func (f Field) IsFile() bool {
	return f.Kind == templates.FieldImage || f.Kind == templates.FieldImages
}

// RenderContext is available to column renderers.
type RenderContext struct {
	Tr *i18n.Translator
	// Refs holds lookups loaded by Definition.References, e.g. category
	// names by id.
	Refs map[string]string
}

// Column is one table column or detail row.
type Column[T any] struct {
	LabelKey string
	// Suffix is appended to the translated label, e.g. " (EN)".
	Suffix string
	Cell   func(rec T, rc RenderContext) templates.Cell
}

// Definition is the per-resource schema of a Screen.
type Definition[T contentapi.Identified] struct {
	Slug string
	// ListPath overrides the list route; it defaults to the collection route.
	ListPath string

	TitleKey  string
	AddKey    string
	EditKey   string
	DeleteKey string
	SearchKey string
	ViewKey   string
	// EntityKey names one record in notices, e.g. "entity.category".
	EntityKey string

	Repo contentapi.ReadDeleter[T]
	// Writer enables create and edit. Nil makes the resource read/delete only.
	Writer Writer

	Fields  []Field
	Columns []Column[T]
	// Details enables the read-only detail view when non-empty.
	Details []Column[T]

	// Values seeds the edit form from a stored record.
	Values func(rec T) map[string]string
	// Media lists stored files per upload field for the edit form.
	Media func(rec T) map[string][]string
	// Search returns the texts matched by ?q= for the active language.
	Search func(rec T, lang i18n.Language) []string
	// Subject names a record in the delete confirmation.
	Subject func(rec T, lang i18n.Language) string
	// References loads lookups shared by every row of a render.
	References func(ctx context.Context, lang i18n.Language) (map[string]string, error)
}
