package screens

import (
	"context"
	"fmt"
	"strconv"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// galleryField is the multi-file upload name the API expects.
const galleryField = "images[]"

// Projects lists portfolio entries. Category names are resolved through the
// categories collection.
func Projects(api *contentapi.API) crud.Definition[contentapi.Project] {
	categories := api.Categories

	categoryNames := func(ctx context.Context, lang i18n.Language) (map[string]string, error) {
		items, err := categories.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		names := make(map[string]string, len(items))
		for _, c := range items {
			names[strconv.FormatInt(c.RecordID(), 10)] = pick(lang, c.NameEN, c.NameAR)
		}
		return names, nil
	}
	categoryOptions := func(ctx context.Context, tr *i18n.Translator) ([]templates.Option, error) {
		items, err := categories.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		options := make([]templates.Option, 0, len(items))
		for _, c := range items {
			options = append(options, templates.Option{
				Value: strconv.FormatInt(c.RecordID(), 10),
				Label: pick(tr.Language(), c.NameEN, c.NameAR),
			})
		}
		return options, nil
	}

	fields := []crud.Field{{
		Name:           "category_id",
		LabelKey:       "field.category",
		Kind:           templates.FieldSelect,
		Required:       true,
		Integer:        true,
		Rule:           "gt=0",
		MessageKey:     "validation.category",
		PlaceholderKey: "field.chooseCategory",
		Options:        categoryOptions,
	}}
	fields = append(fields, bilingualText("title", "title", templates.FieldText, true)...)
	fields = append(fields,
		crud.Field{Name: "video", LabelKey: "field.video", Kind: templates.FieldURL, Rule: "http_url", MessageKey: "validation.url"},
		crud.Field{Name: "cover", LabelKey: "field.cover", Kind: templates.FieldImage},
		crud.Field{Name: galleryField, LabelKey: "field.gallery", Kind: templates.FieldImages},
	)

	return crud.Definition[contentapi.Project]{
		Slug:      routepath.SlugProjects,
		TitleKey:  "ourProjects",
		AddKey:    "addProject",
		EditKey:   "editProject",
		DeleteKey: "deleteProject",
		SearchKey: "searchProjects",
		EntityKey: "entity.project",
		Repo:      api.Projects,
		Writer:    api.Projects,
		Fields:    fields,
		Columns: []crud.Column[contentapi.Project]{
			image("field.cover", func(p contentapi.Project) string { return p.Cover }),
			text("title", suffixEN, func(p contentapi.Project) string { return p.TitleEN }),
			text("title", suffixAR, func(p contentapi.Project) string { return p.TitleAR }),
			{LabelKey: "field.category", Cell: func(p contentapi.Project, rc crud.RenderContext) templates.Cell {
				id := strconv.FormatInt(int64(p.CategoryID), 10)
				if name, ok := rc.Refs[id]; ok {
					return templates.Cell{Text: name}
				}
				return templates.Cell{Text: "#" + id}
			}},
			{LabelKey: "field.video", Cell: func(p contentapi.Project, _ crud.RenderContext) templates.Cell {
				return templates.Cell{Text: p.Video, Link: p.Video}
			}},
		},
		Values: func(p contentapi.Project) map[string]string {
			values := map[string]string{"title_en": p.TitleEN, "title_ar": p.TitleAR, "video": p.Video}
			if p.CategoryID > 0 {
				values["category_id"] = strconv.FormatInt(int64(p.CategoryID), 10)
			}
			return values
		},
		Media: func(p contentapi.Project) map[string][]string {
			out := map[string][]string{}
			if p.Cover != "" {
				out["cover"] = []string{p.Cover}
			}
			if len(p.Images) > 0 {
				out[galleryField] = append([]string(nil), p.Images...)
			}
			return out
		},
		Search: func(p contentapi.Project, lang i18n.Language) []string {
			return []string{pick(lang, p.TitleEN, p.TitleAR)}
		},
		Subject: func(p contentapi.Project, lang i18n.Language) string {
			return pick(lang, p.TitleEN, p.TitleAR)
		},
		References: categoryNames,
	}
}
