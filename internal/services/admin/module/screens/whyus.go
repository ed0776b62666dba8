package screens

import (
	"context"
	"strings"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

type icon struct {
	name  string
	emoji string
}

// icons are the symbols the public site can draw, in picker order.
var icons = []icon{
	{"star", "⭐"},
	{"heart", "❤️"},
	{"check", "✅"},
	{"shield", "🛡️"},
	{"lightbulb", "💡"},
	{"clock", "⏰"},
	{"users", "👥"},
	{"award", "🏆"},
	{"rocket", "🚀"},
	{"gem", "💎"},
}

func iconRule() string {
	names := make([]string, 0, len(icons))
	for _, ic := range icons {
		names = append(names, ic.name)
	}
	return "oneof=" + strings.Join(names, " ")
}

// iconLabel renders an icon name with its emoji, e.g. "⭐ Star".
func iconLabel(tr *i18n.Translator, name string) string {
	for _, ic := range icons {
		if ic.name == name {
			return ic.emoji + " " + tr.T("icon."+ic.name)
		}
	}
	return name
}

func iconOptions(_ context.Context, tr *i18n.Translator) ([]templates.Option, error) {
	options := make([]templates.Option, 0, len(icons))
	for _, ic := range icons {
		options = append(options, templates.Option{Value: ic.name, Label: iconLabel(tr, ic.name)})
	}
	return options, nil
}

// WhyUs lists the selling points shown with an icon.
func WhyUs(api *contentapi.API) crud.Definition[contentapi.WhyChooseUs] {
	fields := bilingualText("name", "name", templates.FieldText, true)
	fields = append(fields, bilingualText("desc", "description", templates.FieldTextarea, true)...)
	fields = append(fields, crud.Field{
		Name:           "icon",
		LabelKey:       "field.icon",
		Kind:           templates.FieldSelect,
		Required:       true,
		Rule:           iconRule(),
		MessageKey:     "validation.icon",
		PlaceholderKey: "field.chooseIcon",
		Options:        iconOptions,
	})

	return crud.Definition[contentapi.WhyChooseUs]{
		Slug:      routepath.SlugWhyUs,
		TitleKey:  "whyChooseUs",
		AddKey:    "addWhyUs",
		EditKey:   "editWhyUs",
		DeleteKey: "deleteWhyUs",
		SearchKey: "searchWhyUs",
		EntityKey: "entity.whyUs",
		Repo:      api.WhyUs,
		Writer:    api.WhyUs,
		Fields:    fields,
		Columns: []crud.Column[contentapi.WhyChooseUs]{
			{LabelKey: "field.icon", Cell: func(w contentapi.WhyChooseUs, rc crud.RenderContext) templates.Cell {
				return templates.Cell{Text: iconLabel(rc.Tr, w.Icon)}
			}},
			text("name", suffixEN, func(w contentapi.WhyChooseUs) string { return w.NameEN }),
			text("name", suffixAR, func(w contentapi.WhyChooseUs) string { return w.NameAR }),
		},
		Values: func(w contentapi.WhyChooseUs) map[string]string {
			return map[string]string{
				"name_en": w.NameEN, "name_ar": w.NameAR,
				"desc_en": w.DescEN, "desc_ar": w.DescAR,
				"icon": w.Icon,
			}
		},
		Search: func(w contentapi.WhyChooseUs, lang i18n.Language) []string {
			return []string{pick(lang, w.NameEN, w.NameAR), pick(lang, w.DescEN, w.DescAR)}
		},
		Subject: func(w contentapi.WhyChooseUs, lang i18n.Language) string {
			return pick(lang, w.NameEN, w.NameAR)
		},
	}
}
