package persona

// Internal (form) field names.
const (
	FieldTipoDocumento   = "tipoDocumento"
	FieldNroDocumento    = "nroDocumento"
	FieldPrimerNombre    = "primerNombre"
	FieldSegundoNombre   = "segundoNombre"
	FieldApellidos       = "apellidos"
	FieldFechaNacimiento = "fechaNacimiento"
	FieldGenero          = "genero"
	FieldEmail           = "email"
	FieldCelular         = "celular"
	FieldFoto            = "foto"
)

// fieldTable is the one mapping between the form vocabulary and the
// backend wire vocabulary. Order is the submission order.
var fieldTable = []struct {
	internal string
	wire     string
}{
	{FieldNroDocumento, "id"},
	{FieldTipoDocumento, "idType"},
	{FieldPrimerNombre, "firstName"},
	{FieldSegundoNombre, "secondName"},
	{FieldApellidos, "surname"},
	{FieldFechaNacimiento, "birthdate"},
	{FieldGenero, "gender"},
	{FieldEmail, "email"},
	{FieldCelular, "phone"},
	{FieldFoto, "foto"},
}

var (
	toWire     = make(map[string]string, len(fieldTable))
	toInternal = make(map[string]string, len(fieldTable))
)

func init() {
	for _, f := range fieldTable {
		toWire[f.internal] = f.wire
		toInternal[f.wire] = f.internal
	}
}

// WireName returns the backend name for an internal field name.
func WireName(internal string) (string, bool) {
	w, ok := toWire[internal]
	return w, ok
}

// InternalName returns the form name for a backend field name.
func InternalName(wire string) (string, bool) {
	i, ok := toInternal[wire]
	return i, ok
}

// InternalFields lists the internal names in submission order.
func InternalFields() []string {
	out := make([]string, 0, len(fieldTable))
	for _, f := range fieldTable {
		out = append(out, f.internal)
	}
	return out
}
