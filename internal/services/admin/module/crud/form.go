package crud

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// maxUploadMemory bounds the multipart bytes kept in memory; larger uploads
// spill to temporary files.
const maxUploadMemory = 32 << 20

// Submission is a parsed create or update request.
type Submission struct {
	// Values holds the trimmed text values by field name.
	Values map[string]string
	// Current and Options echo the state the form was drawn with.
	Current map[string][]string
	Options map[string][]templates.Option
	files   map[string][]*multipart.FileHeader
}

// Redisplay returns the input for redrawing the submitted form with failed
// marking the invalid fields.
func (s Submission) Redisplay(failed map[string]string) FormInput {
	return FormInput{Values: s.Values, Media: s.Current, Options: s.Options, Failed: failed}
}

// ParseSubmission reads the text values and uploads named by fields.
// Multipart and urlencoded bodies are both accepted.
func ParseSubmission(r *http.Request, fields []Field) (Submission, error) {
	sub := Submission{
		Values:  map[string]string{},
		Current: map[string][]string{},
		Options: map[string][]templates.Option{},
		files:   map[string][]*multipart.FileHeader{},
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return sub, fmt.Errorf("parse multipart form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return sub, fmt.Errorf("parse form: %w", err)
		}
	}
	for _, field := range fields {
		if field.IsFile() {
			if current := trimmedValues(r.PostForm[templates.CurrentInputName(field.Name)]); len(current) > 0 {
				sub.Current[field.Name] = current
			}
			if r.MultipartForm == nil {
				continue
			}
			for _, header := range r.MultipartForm.File[field.Name] {
				if header == nil || header.Filename == "" || header.Size == 0 {
					continue
				}
				sub.files[field.Name] = append(sub.files[field.Name], header)
			}
			if field.Kind == templates.FieldImage && len(sub.files[field.Name]) > 1 {
				sub.files[field.Name] = sub.files[field.Name][:1]
			}
			continue
		}
		sub.Values[field.Name] = strings.TrimSpace(r.PostFormValue(field.Name))
		if field.Options != nil {
			for _, raw := range r.PostForm[templates.OptionsInputName(field.Name)] {
				if option, ok := templates.DecodeOption(raw); ok {
					sub.Options[field.Name] = append(sub.Options[field.Name], option)
				}
			}
		}
	}
	return sub, nil
}

// APIForm builds the multipart body sent upstream. Every text field is sent
// in definition order. Files are attached only when a new one was chosen, so
// stored media is kept.
func (s Submission) APIForm(fields []Field) *contentapi.Form {
	form := contentapi.NewForm()
	for _, field := range fields {
		if field.IsFile() {
			continue
		}
		form.Set(field.Name, s.Values[field.Name])
	}
	for _, field := range fields {
		for _, header := range s.files[field.Name] {
			form.AddFile(contentapi.FileFromHeader(field.Name, header))
		}
	}
	return form
}

func trimmedValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
