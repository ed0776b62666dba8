package screens

import (
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Services is the landing screen of the console.
func Services(api *contentapi.API) crud.Definition[contentapi.Service] {
	fields := bilingualText("name", "name", templates.FieldText, true)
	fields = append(fields, bilingualText("desc", "description", templates.FieldTextarea, false)...)
	fields = append(fields, crud.Field{Name: "img", LabelKey: "image", Kind: templates.FieldImage})

	return crud.Definition[contentapi.Service]{
		Slug:      routepath.SlugServices,
		ListPath:  routepath.Admin,
		TitleKey:  "services",
		AddKey:    "addService",
		EditKey:   "editService",
		DeleteKey: "deleteService",
		SearchKey: "searchServices",
		EntityKey: "entity.service",
		Repo:      api.Services,
		Writer:    api.Services,
		Fields:    fields,
		Columns: []crud.Column[contentapi.Service]{
			image("image", func(s contentapi.Service) string { return s.Img }),
			text("name", suffixEN, func(s contentapi.Service) string { return s.NameEN }),
			text("name", suffixAR, func(s contentapi.Service) string { return s.NameAR }),
			text("description", suffixEN, func(s contentapi.Service) string { return s.DescEN }),
		},
		Values: func(s contentapi.Service) map[string]string {
			return map[string]string{"name_en": s.NameEN, "name_ar": s.NameAR, "desc_en": s.DescEN, "desc_ar": s.DescAR}
		},
		Media: func(s contentapi.Service) map[string][]string {
			return media("img", s.Img)
		},
		Search: func(s contentapi.Service, lang i18n.Language) []string {
			return []string{pick(lang, s.NameEN, s.NameAR), pick(lang, s.DescEN, s.DescAR)}
		},
		Subject: func(s contentapi.Service, lang i18n.Language) string {
			return pick(lang, s.NameEN, s.NameAR)
		},
	}
}
