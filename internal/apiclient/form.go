package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form is a multipart request body. Field order is preserved.
type Form struct {
	fields []formField
	file   *File
}

type formField struct {
	name, value string
}

// File is an uploaded file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// NewForm returns an empty multipart body.
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// Attach sets the file part, replacing any previous one.
func (f *Form) Attach(file File) *Form {
	f.file = &file
	return f
}

// Has reports whether a text field or the file part uses name.
func (f *Form) Has(name string) bool {
	if f.file != nil && f.file.Field == name {
		return true
	}
	for _, field := range f.fields {
		if field.name == name {
			return true
		}
	}
	return false
}

// Value returns the first text value for name.
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.value, true
		}
	}
	return "", false
}

// encode writes the body and returns it with its content type, including
// the boundary chosen by the writer.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}

	if f.file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(f.file.Field), escapeQuotes(f.file.Filename)))
		ct := f.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
