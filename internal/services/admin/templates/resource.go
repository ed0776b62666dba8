package templates

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Cell is one table cell. Image, when set, renders a thumbnail instead of
// text.
type Cell struct {
	Text  string
	Image string
	Link  string
}

// Row is one table row and its actions.
type Row struct {
	ID        int64
	Cells     []Cell
	ViewURL   string
	EditURL   string
	DeleteURL string
}

// ListView is a searchable resource table.
type ListView struct {
	Title             string
	ListURL           string
	Query             string
	SearchPlaceholder string
	AddLabel          string
	AddURL            string
	Columns           []string
	Rows              []Row
	Total             int
	CountLabel        string
	EmptyLabel        string
	LoadError         string
}

// ResourceList renders a resource table.
func ResourceList(page PageContext, v ListView) templ.Component {
	return view("list", struct {
		Page PageContext
		View ListView
	}{page, v})
}

// Field kinds understood by the form template.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldSelect   = "select"
	FieldURL      = "url"
	FieldImage    = "image"
	FieldImages   = "images"
)

// Option is one select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Hidden inputs carrying the state a form was drawn with, so a rejected
// submission can be redrawn without reading the record again.
const (
	currentPrefix = "_current."
	optionsPrefix = "_options."
)

// CurrentInputName names the hidden inputs echoing the stored media of field.
func CurrentInputName(field string) string {
	return currentPrefix + field
}

// OptionsInputName names the hidden inputs echoing the options of field.
func OptionsInputName(field string) string {
	return optionsPrefix + field
}

// Encode packs the option into one hidden input value.
func (o Option) Encode() string {
	return url.Values{"l": {o.Label}, "v": {o.Value}}.Encode()
}

// DecodeOption reverses Option.Encode.
func DecodeOption(raw string) (Option, bool) {
	values, err := url.ParseQuery(strings.TrimSpace(raw))
	if err != nil || !values.Has("v") {
		return Option{}, false
	}
	return Option{Value: values.Get("v"), Label: values.Get("l")}, true
}

// FormField is one input of a resource form.
type FormField struct {
	Name        string
	Label       string
	Kind        string
	Value       string
	Required    bool
	Placeholder string
	Options     []Option
	// Current lists stored media shown next to file inputs.
	Current      []string
	CurrentLabel string
	EmptyLabel   string
	Invalid      bool
	Dir          string
}

// CurrentInput is the hidden input name carrying f's stored media.
func (f FormField) CurrentInput() string {
	return CurrentInputName(f.Name)
}

// OptionsInput is the hidden input name carrying f's options.
func (f FormField) OptionsInput() string {
	return OptionsInputName(f.Name)
}

// FormSection groups fields under a language tab. Sections without a label
// render without a tab heading.
type FormSection struct {
	Label  string
	Lang   string
	Dir    string
	Fields []FormField
}

// FormView is a create or edit dialog.
type FormView struct {
	Title       string
	Action      string
	SubmitLabel string
	CancelLabel string
	CancelURL   string
	Sections    []FormSection
	Errors      []string
}

// ResourceForm renders a resource form.
func ResourceForm(page PageContext, v FormView) templ.Component {
	return view("form", struct {
		Page PageContext
		View FormView
	}{page, v})
}

// DetailField is one labelled value of a detail view.
type DetailField struct {
	Label string
	Value string
	Image string
}

// DetailView shows one record read-only.
type DetailView struct {
	Title       string
	Fields      []DetailField
	BackLabel   string
	BackURL     string
	DeleteLabel string
	DeleteURL   string
	EditLabel   string
	EditURL     string
}

// ResourceDetail renders a record.
func ResourceDetail(page PageContext, v DetailView) templ.Component {
	return view("detail", struct {
		Page PageContext
		View DetailView
	}{page, v})
}

// ConfirmView asks before a destructive action.
type ConfirmView struct {
	Title        string
	Message      string
	Subject      string
	Action       string
	ConfirmLabel string
	CancelLabel  string
	CancelURL    string
}

// ConfirmDelete renders a delete confirmation.
func ConfirmDelete(page PageContext, v ConfirmView) templ.Component {
	return view("confirm", struct {
		Page PageContext
		View ConfirmView
	}{page, v})
}

// AboutView shows the stored company profile in both languages.
type AboutView struct {
	Title     string
	EditLabel string
	EditURL   string
	Empty     string
	Sections  []DetailSection
	Image     string
	LoadError string
}

// DetailSection is a labelled group of detail fields.
type DetailSection struct {
	Label  string
	Lang   string
	Dir    string
	Fields []DetailField
}

// AboutUs renders the profile page.
func AboutUs(page PageContext, v AboutView) templ.Component {
	return view("about", struct {
		Page PageContext
		View AboutView
	}{page, v})
}
