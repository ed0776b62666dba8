package templates

import (
	"net/url"

	"github.com/decorimic/admin/internal/services/admin/i18n"
)

// LanguageOption is one entry of the header language switcher.
type LanguageOption struct {
	Code   string
	Label  string
	URL    string
	Active bool
}

// Languages returns the switcher entries for the page.
func (p PageContext) Languages() []LanguageOption {
	supported := i18n.Supported()
	out := make([]LanguageOption, 0, len(supported))
	for _, lang := range supported {
		out = append(out, LanguageOption{
			Code:   string(lang),
			Label:  p.T("lang." + string(lang)),
			URL:    LanguageURL(p, lang),
			Active: lang == p.Lang,
		})
	}
	return out
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, lang i18n.Language) string {
	values, err := url.ParseQuery(page.CurrentQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(i18n.LangParam, string(lang))
	path := page.CurrentPath
	if path == "" {
		path = "/"
	}
	return path + "?" + values.Encode()
}
