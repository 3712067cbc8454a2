package persona

import (
	"strings"
	"time"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/domain"
)

// DateLayout is the value format of an HTML date input.
const DateLayout = "2006-01-02"

// Document types and genders accepted by the form.
var (
	DocumentTypes = []Option{
		{Value: "CC", Label: "Cédula de Ciudadanía"},
		{Value: "TI", Label: "Tarjeta de Identidad"},
	}
	Genders = []Option{
		{Value: "Masculino", Label: "Masculino"},
		{Value: "Femenino", Label: "Femenino"},
		{Value: "No binario", Label: "No binario"},
		{Value: "Prefiero no reportar", Label: "Prefiero no reportar"},
	}
)

// Option is a select choice.
type Option struct {
	Value string
	Label string
}

// Photo is an uploaded image held in memory until it is relayed.
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Form is the create/edit form in the internal vocabulary.
type Form struct {
	TipoDocumento   string `form:"tipoDocumento" validate:"oneof=CC TI"`
	NroDocumento    string `form:"nroDocumento" validate:"min=5,max=10,number"`
	PrimerNombre    string `form:"primerNombre" validate:"max=30,nombre"`
	SegundoNombre   string `form:"segundoNombre" validate:"max=30,nombreopt"`
	Apellidos       string `form:"apellidos" validate:"max=60,nombre"`
	FechaNacimiento string `form:"fechaNacimiento" validate:"fecha"`
	Genero          string `form:"genero" validate:"genero"`
	Email           string `form:"email" validate:"email"`
	Celular         string `form:"celular" validate:"len=10,number"`
	Foto            *Photo `form:"-"`
}

// Get returns a text field by internal name.
func (f *Form) Get(name string) string {
	switch name {
	case FieldTipoDocumento:
		return f.TipoDocumento
	case FieldNroDocumento:
		return f.NroDocumento
	case FieldPrimerNombre:
		return f.PrimerNombre
	case FieldSegundoNombre:
		return f.SegundoNombre
	case FieldApellidos:
		return f.Apellidos
	case FieldFechaNacimiento:
		return f.FechaNacimiento
	case FieldGenero:
		return f.Genero
	case FieldEmail:
		return f.Email
	case FieldCelular:
		return f.Celular
	}
	return ""
}

// Set assigns a text field by internal name. Unknown names are ignored.
func (f *Form) Set(name, value string) {
	switch name {
	case FieldTipoDocumento:
		f.TipoDocumento = value
	case FieldNroDocumento:
		f.NroDocumento = value
	case FieldPrimerNombre:
		f.PrimerNombre = value
	case FieldSegundoNombre:
		f.SegundoNombre = value
	case FieldApellidos:
		f.Apellidos = value
	case FieldFechaNacimiento:
		f.FechaNacimiento = value
	case FieldGenero:
		f.Genero = value
	case FieldEmail:
		f.Email = value
	case FieldCelular:
		f.Celular = value
	}
}

// WireValues maps the non-empty text fields to their backend names.
func (f *Form) WireValues() map[string]string {
	out := make(map[string]string, len(fieldTable))
	for _, name := range InternalFields() {
		v := f.Get(name)
		if v == "" {
			continue
		}
		wire, _ := WireName(name)
		out[wire] = v
	}
	return out
}

// Multipart builds the request body. Empty fields are omitted and the photo
// part is only included when a file was selected.
func (f *Form) Multipart() *apiclient.Form {
	body := apiclient.NewForm()
	for _, name := range InternalFields() {
		wire, _ := WireName(name)
		if name == FieldFoto {
			if f.Foto != nil && f.Foto.Size > 0 {
				body.Attach(apiclient.File{
					Field:       wire,
					Filename:    f.Foto.Filename,
					ContentType: f.Foto.ContentType,
					Data:        f.Foto.Data,
				})
			}
			continue
		}
		if v := f.Get(name); v != "" {
			body.Set(wire, v)
		}
	}
	return body
}

// FormFromPersona remaps a backend record into the form vocabulary and
// converts the birth date to the date input format.
func FormFromPersona(p domain.Persona) Form {
	var f Form
	for wire, v := range p.WireValues() {
		if name, ok := InternalName(wire); ok {
			f.Set(name, v)
		}
	}
	f.FechaNacimiento = DateInputValue(f.FechaNacimiento)
	return f
}

// FormFromValues builds a form from submitted values keyed by internal name.
func FormFromValues(value func(name string) string) Form {
	var f Form
	for _, name := range InternalFields() {
		f.Set(name, strings.TrimSpace(value(name)))
	}
	return f
}

// DateInputValue reformats a backend date as YYYY-MM-DD. Unparseable
// values are returned empty.
func DateInputValue(raw string) string {
	t, ok := parseDate(raw)
	if !ok {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
