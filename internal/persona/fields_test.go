package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTable_RoundTrips(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range InternalFields() {
		wire, ok := WireName(name)
		require.True(t, ok, "no wire name for %s", name)
		assert.False(t, seen[wire], "wire name %s used twice", wire)
		seen[wire] = true

		back, ok := InternalName(wire)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
	assert.Len(t, seen, 10)
}

func TestFieldTable_KnownPairs(t *testing.T) {
	pairs := map[string]string{
		FieldNroDocumento:    "id",
		FieldTipoDocumento:   "idType",
		FieldPrimerNombre:    "firstName",
		FieldSegundoNombre:   "secondName",
		FieldApellidos:       "surname",
		FieldFechaNacimiento: "birthdate",
		FieldGenero:          "gender",
		FieldCelular:         "phone",
	}
	for internal, wire := range pairs {
		got, _ := WireName(internal)
		assert.Equal(t, wire, got, internal)
	}

	_, ok := WireName("unknown")
	assert.False(t, ok)
	_, ok = InternalName("fotoUrl")
	assert.False(t, ok)
}
