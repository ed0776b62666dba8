package contentapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is one uploaded file forwarded to the API as a multipart part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FileFromHeader adapts a parsed browser upload.
func FileFromHeader(field string, header *multipart.FileHeader) File {
	return File{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

type formValue struct {
	name  string
	value string
}

// Form is an ordered multipart body. Text fields are written first, files
// after them, each in insertion order.
type Form struct {
	values []formValue
	files  []File
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field.
func (f *Form) Set(name, value string) *Form {
	f.values = append(f.values, formValue{name: name, value: value})
	return f
}

// AddFile appends a file part.
func (f *Form) AddFile(file File) *Form {
	f.files = append(f.files, file)
	return f
}

// Value returns the first text value stored under name.
func (f *Form) Value(name string) (string, bool) {
	for _, v := range f.values {
		if v.name == name {
			return v.value, true
		}
	}
	return "", false
}

// FileFields lists the field names of attached files in order.
func (f *Form) FileFields() []string {
	out := make([]string, 0, len(f.files))
	for _, file := range f.files {
		out = append(out, file.Field)
	}
	return out
}

// Encode renders the body and returns it with its content type.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, v := range f.values {
		if err := w.WriteField(v.name, v.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", v.name, err)
		}
	}
	for _, file := range f.files {
		if err := writeFile(w, file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, file File) error {
	if file.Open == nil {
		return fmt.Errorf("file %s has no content", file.Field)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Filename)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part %s: %w", file.Field, err)
	}
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer src.Close()
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy upload %s: %w", file.Filename, err)
	}
	return nil
}
