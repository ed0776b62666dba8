package crud

import (
	"context"
	"log/slog"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// FormInput is the state a form is rendered from.
type FormInput struct {
	Values map[string]string
	// Media lists stored files per upload field.
	Media map[string][]string
	// Options replaces loading a select's options when set for its field.
	Options map[string][]templates.Option
	// Failed maps invalid fields to the catalog key explaining them.
	Failed map[string]string
}

// FormSections lays fields out as an English tab, an Arabic tab and a
// shared section, and lists the validation messages in field order. Option
// loading failures are logged and leave the select empty.
func FormSections(ctx context.Context, tr *i18n.Translator, logger *slog.Logger, fields []Field, in FormInput) ([]templates.FormSection, []string) {
	if logger == nil {
		logger = slog.Default()
	}
	tabs := []struct {
		lang     i18n.Language
		labelKey string
	}{
		{i18n.English, "tab.english"},
		{i18n.Arabic, "tab.arabic"},
		{"", ""},
	}

	var sections []templates.FormSection
	for _, tab := range tabs {
		section := templates.FormSection{}
		if tab.lang != "" {
			section.Label = tr.T(tab.labelKey)
			section.Lang = string(tab.lang)
			section.Dir = tab.lang.Dir()
		}
		for _, field := range fields {
			if field.Tab != tab.lang {
				continue
			}
			section.Fields = append(section.Fields, formField(ctx, tr, logger, field, in))
		}
		if len(section.Fields) > 0 {
			sections = append(sections, section)
		}
	}

	var errs []string
	for _, field := range fields {
		if key, failed := in.Failed[field.Name]; failed {
			errs = append(errs, tr.T(field.LabelKey)+": "+tr.T(key))
		}
	}
	return sections, errs
}

func formField(ctx context.Context, tr *i18n.Translator, logger *slog.Logger, field Field, in FormInput) templates.FormField {
	_, invalid := in.Failed[field.Name]
	out := templates.FormField{
		Name:     field.Name,
		Label:    tr.T(field.LabelKey),
		Kind:     field.Kind,
		Value:    in.Values[field.Name],
		Required: field.Required,
		Invalid:  invalid,
	}
	if field.Tab != "" {
		out.Dir = field.Tab.Dir()
	}
	if field.PlaceholderKey != "" {
		out.Placeholder = tr.T(field.PlaceholderKey)
	}
	if field.Options != nil {
		options, err := fieldOptions(ctx, tr, field, in)
		if err != nil {
			logger.WarnContext(ctx, "load field options", "field", field.Name, "error", err)
		}
		for i := range options {
			options[i].Selected = options[i].Value == out.Value
		}
		out.Options = options
	}
	if field.IsFile() {
		out.Current = in.Media[field.Name]
		out.CurrentLabel = tr.T("field.currentImage")
		out.EmptyLabel = tr.T("field.noImage")
	}
	return out
}

func fieldOptions(ctx context.Context, tr *i18n.Translator, field Field, in FormInput) ([]templates.Option, error) {
	if carried := in.Options[field.Name]; len(carried) > 0 {
		return append([]templates.Option(nil), carried...), nil
	}
	return field.Options(ctx, tr)
}
