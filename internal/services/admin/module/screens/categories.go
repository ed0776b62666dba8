package screens

import (
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Categories groups projects.
func Categories(api *contentapi.API) crud.Definition[contentapi.Category] {
	fields := bilingualText("name", "name", templates.FieldText, true)
	fields = append(fields, bilingualText("desc", "description", templates.FieldTextarea, true)...)

	return crud.Definition[contentapi.Category]{
		Slug:      routepath.SlugCategories,
		TitleKey:  "categories",
		AddKey:    "addCategory",
		EditKey:   "editCategory",
		DeleteKey: "deleteCategory",
		SearchKey: "searchCategories",
		EntityKey: "entity.category",
		Repo:      api.Categories,
		Writer:    api.Categories,
		Fields:    fields,
		Columns: []crud.Column[contentapi.Category]{
			text("name", suffixEN, func(c contentapi.Category) string { return c.NameEN }),
			text("name", suffixAR, func(c contentapi.Category) string { return c.NameAR }),
			text("description", suffixEN, func(c contentapi.Category) string { return c.DescEN }),
		},
		Values: func(c contentapi.Category) map[string]string {
			return map[string]string{"name_en": c.NameEN, "name_ar": c.NameAR, "desc_en": c.DescEN, "desc_ar": c.DescAR}
		},
		Search: func(c contentapi.Category, lang i18n.Language) []string {
			return []string{pick(lang, c.NameEN, c.NameAR), pick(lang, c.DescEN, c.DescAR)}
		},
		Subject: func(c contentapi.Category, lang i18n.Language) string {
			return pick(lang, c.NameEN, c.NameAR)
		},
	}
}
