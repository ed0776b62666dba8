package screens

import (
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Clients lists customer logos.
func Clients(api *contentapi.API) crud.Definition[contentapi.ClientLogo] {
	fields := bilingualText("name", "name", templates.FieldText, true)
	fields = append(fields, crud.Field{Name: "img", LabelKey: "field.logo", Kind: templates.FieldImage})

	return crud.Definition[contentapi.ClientLogo]{
		Slug:      routepath.SlugClients,
		TitleKey:  "ourClients",
		AddKey:    "addClient",
		EditKey:   "editClient",
		DeleteKey: "deleteClient",
		SearchKey: "searchClients",
		EntityKey: "entity.client",
		Repo:      api.Clients,
		Writer:    api.Clients,
		Fields:    fields,
		Columns: []crud.Column[contentapi.ClientLogo]{
			image("field.logo", func(c contentapi.ClientLogo) string { return c.Img }),
			text("name", suffixEN, func(c contentapi.ClientLogo) string { return c.NameEN }),
			text("name", suffixAR, func(c contentapi.ClientLogo) string { return c.NameAR }),
		},
		Values: func(c contentapi.ClientLogo) map[string]string {
			return map[string]string{"name_en": c.NameEN, "name_ar": c.NameAR}
		},
		Media: func(c contentapi.ClientLogo) map[string][]string {
			return media("img", c.Img)
		},
		Search: func(c contentapi.ClientLogo, lang i18n.Language) []string {
			return []string{pick(lang, c.NameEN, c.NameAR)}
		},
		Subject: func(c contentapi.ClientLogo, lang i18n.Language) string {
			return pick(lang, c.NameEN, c.NameAR)
		},
	}
}
