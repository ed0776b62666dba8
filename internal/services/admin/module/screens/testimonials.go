package screens

import (
	"context"
	"strconv"
	"strings"

	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

const maxStars = 5

func stars(n int64) string {
	if n < 0 {
		n = 0
	}
	if n > maxStars {
		n = maxStars
	}
	return strings.Repeat("★", int(n)) + strings.Repeat("☆", int(maxStars-n))
}

func ratingOptions(_ context.Context, _ *i18n.Translator) ([]templates.Option, error) {
	options := make([]templates.Option, 0, maxStars)
	for n := int64(1); n <= maxStars; n++ {
		options = append(options, templates.Option{
			Value: strconv.FormatInt(n, 10),
			Label: strconv.FormatInt(n, 10) + " " + stars(n),
		})
	}
	return options, nil
}

// Testimonials lists customer reviews. Reviews are not bilingual.
func Testimonials(api *contentapi.API) crud.Definition[contentapi.Review] {
	return crud.Definition[contentapi.Review]{
		Slug:      routepath.SlugTestimonials,
		TitleKey:  "testimonials",
		AddKey:    "addTestimonial",
		EditKey:   "editTestimonial",
		DeleteKey: "deleteTestimonial",
		SearchKey: "searchTestimonials",
		EntityKey: "entity.testimonial",
		Repo:      api.Reviews,
		Writer:    api.Reviews,
		Fields: []crud.Field{
			{Name: "name", LabelKey: "name", Kind: templates.FieldText, Required: true},
			{Name: "text", LabelKey: "text", Kind: templates.FieldTextarea, Required: true},
			{
				Name:           "num_star",
				LabelKey:       "rating",
				Kind:           templates.FieldSelect,
				Required:       true,
				Integer:        true,
				Rule:           "min=1,max=5",
				MessageKey:     "validation.rating",
				PlaceholderKey: "field.chooseRating",
				Options:        ratingOptions,
			},
		},
		Columns: []crud.Column[contentapi.Review]{
			text("name", "", func(r contentapi.Review) string { return r.Name }),
			text("text", "", func(r contentapi.Review) string { return r.Text }),
			text("rating", "", func(r contentapi.Review) string { return stars(int64(r.NumStar)) }),
		},
		Values: func(r contentapi.Review) map[string]string {
			values := map[string]string{"name": r.Name, "text": r.Text}
			if r.NumStar > 0 {
				values["num_star"] = strconv.FormatInt(int64(r.NumStar), 10)
			}
			return values
		},
		Search: func(r contentapi.Review, _ i18n.Language) []string {
			return []string{r.Name, r.Text}
		},
		Subject: func(r contentapi.Review, _ i18n.Language) string {
			return r.Name
		},
	}
}
