package screens

import (
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
)

// Messages lists visitor enquiries. They are read and deleted only.
func Messages(api *contentapi.API) crud.Definition[contentapi.ContactMessage] {
	name := text("name", "", func(m contentapi.ContactMessage) string { return m.Name })
	email := text("email", "", func(m contentapi.ContactMessage) string { return m.Email })
	phone := text("phone", "", func(m contentapi.ContactMessage) string { return m.Phone })
	typeUnit := text("typeUnit", "", func(m contentapi.ContactMessage) string { return m.TypeUnit })
	location := text("location", "", func(m contentapi.ContactMessage) string { return m.Location })
	msg := text("message", "", func(m contentapi.ContactMessage) string { return m.Msg })
	created := createdAt(func(m contentapi.ContactMessage) string { return m.CreatedAt })

	return crud.Definition[contentapi.ContactMessage]{
		Slug:      routepath.SlugMessages,
		TitleKey:  "contactMessages",
		DeleteKey: "deleteMessage",
		SearchKey: "searchMessages",
		ViewKey:   "viewMessage",
		EntityKey: "entity.message",
		Repo:      api.Contact,
		Columns: []crud.Column[contentapi.ContactMessage]{
			name, email, phone, typeUnit, created,
		},
		Details: []crud.Column[contentapi.ContactMessage]{
			name, email, phone, typeUnit, location, msg, created,
		},
		Search: func(m contentapi.ContactMessage, _ i18n.Language) []string {
			return []string{m.Name, m.Email, m.Phone, m.TypeUnit, m.Location, m.Msg}
		},
		Subject: func(m contentapi.ContactMessage, _ i18n.Language) string {
			if m.Email == "" {
				return m.Name
			}
			return m.Name + " <" + m.Email + ">"
		},
	}
}
