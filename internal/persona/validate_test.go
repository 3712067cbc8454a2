package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		TipoDocumento:   "CC",
		NroDocumento:    "1012345678",
		PrimerNombre:    "María José",
		SegundoNombre:   "",
		Apellidos:       "Pérez Núñez",
		FechaNacimiento: "1990-05-01",
		Genero:          "No binario",
		Email:           "maria@example.com",
		Celular:         "3001234567",
		Foto:            &Photo{Filename: "m.jpg", ContentType: "image/jpeg", Size: 1024, Data: make([]byte, 1024)},
	}
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	f := validForm()
	assert.NoError(t, f.Validate(ModeCreate))
}

func TestValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		msg   string
	}{
		{"bad document type", FieldTipoDocumento, "PA", "Seleccione un tipo válido (CC o TI)"},
		{"short document", FieldNroDocumento, "1234", "Mínimo 5 dígitos"},
		{"long document", FieldNroDocumento, "12345678901", "Máximo 10 dígitos"},
		{"letters in document", FieldNroDocumento, "12a45", "El documento solo debe contener números"},
		{"digits in first name", FieldPrimerNombre, "Ana2", "No se permiten números ni caracteres especiales"},
		{"empty first name", FieldPrimerNombre, "", "No se permiten números ni caracteres especiales"},
		{"long first name", FieldPrimerNombre, strings.Repeat("a", 31), "Máximo 30 caracteres"},
		{"digits in second name", FieldSegundoNombre, "J0se", "No se permiten números"},
		{"symbol in surname", FieldApellidos, "Pérez×", "No se permiten números"},
		{"bad date", FieldFechaNacimiento, "31/31/1990", "Fecha inválida"},
		{"bad gender", FieldGenero, "Otro", "Seleccione un género válido"},
		{"bad email", FieldEmail, "maria.example.com", "Formato de correo inválido"},
		{"short phone", FieldCelular, "300123", "El celular debe tener exactamente 10 dígitos"},
		{"letters in phone", FieldCelular, "30012345ab", "Solo números"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			f.Set(tc.field, tc.value)

			err := f.Validate(ModeCreate)
			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tc.msg, ve[tc.field])
			assert.Len(t, ve, 1)
		})
	}
}

func TestValidate_PhotoRules(t *testing.T) {
	f := validForm()
	f.Foto = nil
	ve, ok := AsValidationError(f.Validate(ModeCreate))
	require.True(t, ok)
	assert.Equal(t, msgPhotoRequired, ve[FieldFoto])

	assert.NoError(t, f.Validate(ModeEdit), "photo is optional on edit")

	f.Foto = &Photo{Filename: "big.png", ContentType: "image/png", Size: MaxPhotoSize + 1}
	ve, _ = AsValidationError(f.Validate(ModeEdit))
	assert.Equal(t, msgPhotoSize, ve[FieldFoto])

	f.Foto = &Photo{Filename: "doc.pdf", ContentType: "application/pdf", Size: 10}
	ve, _ = AsValidationError(f.Validate(ModeEdit))
	assert.Equal(t, msgPhotoType, ve[FieldFoto])

	f.Foto = &Photo{Filename: "ok.webp", ContentType: "image/webp", Size: MaxPhotoSize}
	assert.NoError(t, f.Validate(ModeEdit))
}

func TestIsName(t *testing.T) {
	assert.True(t, isName("José Ñúñez"))
	assert.True(t, isName("Çelik"))
	assert.True(t, isName(""))
	assert.False(t, isName("Ana-María"))
	assert.False(t, isName("a÷b"))
	assert.False(t, isName("Ana1"))
}
