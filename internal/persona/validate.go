package persona

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxPhotoSize is the upload limit for the photo field.
const MaxPhotoSize = 2 * 1024 * 1024

// AcceptedImageTypes lists the photo MIME types the form accepts.
var AcceptedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// Mode selects the photo rule: required on create, optional on edit.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ValidationError maps internal field names to the message shown next to
// the input.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError extracts field errors from err.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var messages = map[string]string{
	FieldTipoDocumento + ".oneof":     "Seleccione un tipo válido (CC o TI)",
	FieldNroDocumento + ".min":        "Mínimo 5 dígitos",
	FieldNroDocumento + ".max":        "Máximo 10 dígitos",
	FieldNroDocumento + ".number":     "El documento solo debe contener números",
	FieldPrimerNombre + ".max":        "Máximo 30 caracteres",
	FieldPrimerNombre + ".nombre":     "No se permiten números ni caracteres especiales",
	FieldSegundoNombre + ".max":       "Máximo 30 caracteres",
	FieldSegundoNombre + ".nombreopt": "No se permiten números",
	FieldApellidos + ".max":           "Máximo 60 caracteres",
	FieldApellidos + ".nombre":        "No se permiten números",
	FieldFechaNacimiento + ".fecha":   "Fecha inválida",
	FieldGenero + ".genero":           "Seleccione un género válido",
	FieldEmail + ".email":             "Formato de correo inválido",
	FieldCelular + ".len":             "El celular debe tener exactamente 10 dígitos",
	FieldCelular + ".number":          "Solo números",
}

const (
	msgPhotoRequired = "La foto es obligatoria."
	msgPhotoSize     = "El tamaño máximo es 2MB."
	msgPhotoType     = "Formato no soportado (.jpg, .jpeg, .png, .webp)"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nombre", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && isName(s)
	})
	_ = v.RegisterValidation("nombreopt", func(fl validator.FieldLevel) bool {
		return isName(fl.Field().String())
	})
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, ok := parseDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("genero", func(fl validator.FieldLevel) bool {
		for _, g := range Genders {
			if g.Value == fl.Field().String() {
				return true
			}
		}
		return false
	})
	return v
}

// isName accepts ASCII letters, the Latin-1 letters (accented vowels, ñ, ç,
// ...) and whitespace. The empty string is accepted.
func isName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= 0xC0 && r <= 0xFF && r != 0xD7 && r != 0xF7:
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

// Validate checks the form against the schema. It returns a
// ValidationError holding one message per failing field, or nil.
func (f *Form) Validate(mode Mode) error {
	errs := ValidationError{}

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			name := fe.Field()
			if _, seen := errs[name]; seen {
				continue
			}
			msg, ok := messages[name+"."+fe.Tag()]
			if !ok {
				msg = "Valor inválido"
			}
			errs[name] = msg
		}
	}

	if msg := validatePhoto(f.Foto, mode); msg != "" {
		errs[FieldFoto] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePhoto(p *Photo, mode Mode) string {
	if p == nil || p.Size == 0 {
		if mode == ModeCreate {
			return msgPhotoRequired
		}
		return ""
	}
	if p.Size > MaxPhotoSize {
		return msgPhotoSize
	}
	for _, t := range AcceptedImageTypes {
		if p.ContentType == t {
			return ""
		}
	}
	return msgPhotoType
}
