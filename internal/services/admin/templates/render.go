// Package templates renders console pages as templ components backed by
// embedded html/template files.
package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var htmlFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).ParseFS(htmlFS, "html/*.html"))

// view renders the named template with data.
func view(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pages.ExecuteTemplate(w, name, data); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		return nil
	})
}

// shell renders the named wrapper template around the component's children.
func shell(name string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), &body); err != nil {
			return err
		}
		return view(name, shellData{Page: page, Body: template.HTML(body.String())}).Render(ctx, w)
	})
}

type shellData struct {
	Page PageContext
	Body template.HTML
}

// Layout is the authenticated console chrome: sidebar, header and toast.
func Layout(page PageContext) templ.Component {
	return shell("layout", page)
}

// PublicLayout wraps pages that do not require a session.
func PublicLayout(page PageContext) templ.Component {
	return shell("public", page)
}
