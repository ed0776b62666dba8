package screens

import (
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// News lists bilingual articles. Every text field is required in both
// languages.
func News(api *contentapi.API) crud.Definition[contentapi.News] {
	var fields []crud.Field
	fields = append(fields, bilingualText("title", "title", templates.FieldText, true)...)
	fields = append(fields, bilingualText("keyword", "field.keyword", templates.FieldText, true)...)
	fields = append(fields, bilingualText("body", "field.body", templates.FieldTextarea, true)...)
	fields = append(fields, bilingualText("content", "content", templates.FieldTextarea, true)...)
	fields = append(fields, crud.Field{Name: "image", LabelKey: "image", Kind: templates.FieldImage})

	return crud.Definition[contentapi.News]{
		Slug:      routepath.SlugNews,
		TitleKey:  "news",
		AddKey:    "addNews",
		EditKey:   "editNews",
		DeleteKey: "deleteNews",
		SearchKey: "searchNews",
		EntityKey: "entity.news",
		Repo:      api.News,
		Writer:    api.News,
		Fields:    fields,
		Columns: []crud.Column[contentapi.News]{
			image("image", func(n contentapi.News) string { return n.Image }),
			text("title", suffixEN, func(n contentapi.News) string { return n.TitleEN }),
			text("title", suffixAR, func(n contentapi.News) string { return n.TitleAR }),
			text("field.keyword", suffixEN, func(n contentapi.News) string { return n.KeywordEN }),
			createdAt(func(n contentapi.News) string { return n.CreatedAt }),
		},
		Values: func(n contentapi.News) map[string]string {
			return map[string]string{
				"title_en": n.TitleEN, "title_ar": n.TitleAR,
				"keyword_en": n.KeywordEN, "keyword_ar": n.KeywordAR,
				"body_en": n.BodyEN, "body_ar": n.BodyAR,
				"content_en": n.ContentEN, "content_ar": n.ContentAR,
			}
		},
		Media: func(n contentapi.News) map[string][]string {
			return media("image", n.Image)
		},
		Search: func(n contentapi.News, lang i18n.Language) []string {
			return []string{
				pick(lang, n.TitleEN, n.TitleAR),
				pick(lang, n.BodyEN, n.BodyAR),
				pick(lang, n.KeywordEN, n.KeywordAR),
				pick(lang, n.ContentEN, n.ContentAR),
			}
		},
		Subject: func(n contentapi.News, lang i18n.Language) string {
			return pick(lang, n.TitleEN, n.TitleAR)
		},
	}
}
