package validation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	messages = catalog.NewBuilder(catalog.Fallback(language.English))
	matcher  language.Matcher
	// keys registered for a specific field, the rest fall back to the per-kind text
	fieldKeys = map[string]bool{}
)

type entry struct {
	key string
	en  string
	es  string
}

var labels = []entry{
	{FieldNationalID, "National ID", "CI"},
	{FieldFullName, "Full name", "Nombre completo"},
	{FieldBirthDate, "Birth date", "Fecha de nacimiento"},
	{FieldAddress, "Address", "Dirección"},
	{FieldPhone, "Phone", "Teléfono"},
	{FieldParentEmail, "Parent email", "Email del tutor"},
	{FieldRouteID, "Route", "Ruta"},
	{FieldStatus, "Status", "Estado"},
	{FieldLicenseNumber, "License number", "Número de licencia"},
	{FieldLicenseExpiry, "License expiry", "Vencimiento de licencia"},
	{FieldEmail, "Email", "Email"},
	{FieldPlate, "Plate", "Placa"},
	{FieldBrand, "Brand", "Marca"},
	{FieldModel, "Model", "Modelo"},
	{FieldYear, "Year", "Año"},
	{FieldCapacity, "Capacity", "Capacidad"},
	{FieldColor, "Color", "Color"},
	{FieldName, "Route name", "Nombre de la ruta"},
	{FieldZone, "Zone", "Zona"},
	{FieldPickupTime, "Pickup time", "Hora de recogida"},
	{FieldDropoffTime, "Drop-off time", "Hora de entrega"},
	{FieldDriverID, "Driver", "Conductor"},
	{FieldVehicleID, "Vehicle", "Vehículo"},
}

// Generic texts receive the localized field label as their first argument.
var generic = []entry{
	{string(KindRequired), "%[1]s is required", "Campo obligatorio: %[1]s"},
	{string(KindFormat), "%[1]s has an invalid format", "Formato inválido: %[1]s"},
	{string(KindMinLength), "%[1]s must have at least %[2]d characters", "%[1]s: mínimo %[2]d caracteres"},
	{string(KindRange), "%[1]s must be between %[2]v and %[3]v", "%[1]s: debe estar entre %[2]v y %[3]v"},
	{string(KindPastDate), "%[1]s must be in the past", "%[1]s: debe ser una fecha pasada"},
	{string(KindFutureDate), "%[1]s must be in the future", "%[1]s: debe ser una fecha futura"},
	{string(KindMinAge), "%[1]s implies an age under %[2]d", "%[1]s: edad menor a %[2]d años"},
	{string(KindMaxAge), "%[1]s implies an age over %[2]d", "%[1]s: edad mayor a %[2]d años"},
	{string(KindOrder), "%[1]s is out of order", "%[1]s: fuera de orden"},
	{string(KindEnum), "%[1]s must be one of %[2]v", "%[1]s: valores permitidos %[2]v"},
	{string(KindImmutable), "%[1]s cannot be changed after creation", "%[1]s: no se puede modificar después del registro"},
	{string(KindReference), "%[1]s does not match an existing record", "%[1]s: no corresponde a un registro existente"},
}

var specific = []entry{
	{"nationalId.format", "Invalid national ID. Valid examples: 12345678, 1234567-SC, 12345678-CBBA", "Formato de CI inválido. Ejemplos válidos: 12345678, 1234567-SC, 12345678-CBBA"},
	{"fullName.format", "Enter first and last name (letters only)", "Debe ingresar nombre y apellido (solo letras)"},
	{"birthDate.pastDate", "Birth date must be in the past", "La fecha de nacimiento debe ser pasada"},
	{"birthDate.minAge", "The student must be at least %[1]d years old", "El estudiante debe tener al menos %[1]d años"},
	{"birthDate.maxAge", "The student cannot be older than %[1]d", "El estudiante no puede tener más de %[1]d años"},
	{"address.minLength", "Address must have at least %[1]d characters", "La dirección debe tener al menos %[1]d caracteres"},
	{"phone.format", "Invalid phone (8 digits). Example: 78901234", "Formato de teléfono inválido (8 dígitos). Ejemplo: 78901234"},
	{"parentEmail.format", "Invalid email format", "Formato de email inválido"},
	{"email.format", "Invalid email format", "Formato de email inválido"},
	{"licenseNumber.format", "Invalid license. Examples: A-1234567, B-12345678, PROF-1234567", "Formato de licencia inválido. Ejemplos: A-1234567, B-12345678, PROF-1234567"},
	{"licenseExpiry.futureDate", "The license must be current (future date)", "La licencia debe estar vigente (fecha futura)"},
	{"plate.format", "Invalid plate. Valid examples: 1234ABC, 5678XYZ", "Formato de placa inválido. Ejemplos válidos: 1234ABC, 5678XYZ"},
	{"brand.format", "Brand may only contain letters", "La marca solo puede contener letras"},
	{"model.format", "Model contains invalid characters", "El modelo contiene caracteres inválidos"},
	{"year.range", "Year must be between %[1]v and %[2]v", "El año debe estar entre %[1]v y %[2]v"},
	{"capacity.range", "Capacity must be between %[1]v and %[2]v passengers", "La capacidad debe ser entre %[1]v y %[2]v pasajeros"},
	{"name.minLength", "Name must have at least %[1]d characters", "El nombre debe tener al menos %[1]d caracteres"},
	{"pickupTime.format", "Invalid time format (HH:MM)", "Formato de hora inválido (HH:MM)"},
	{"dropoffTime.format", "Invalid time format (HH:MM)", "Formato de hora inválido (HH:MM)"},
	{"dropoffTime.order", "Drop-off time must be after pickup time", "La hora de entrega debe ser posterior a la de recogida"},
}

func init() {
	for _, e := range labels {
		mustSet("label."+e.key, e)
	}
	for _, e := range generic {
		mustSet("kind."+e.key, e)
	}
	for _, e := range specific {
		mustSet(e.key, e)
		fieldKeys[e.key] = true
	}
	matcher = language.NewMatcher(messages.Languages())
}

func mustSet(key string, e entry) {
	if err := messages.SetString(language.English, key, e.en); err != nil {
		panic(err)
	}
	if err := messages.SetString(language.Spanish, key, e.es); err != nil {
		panic(err)
	}
}

// Supported lists the languages validation messages are available in.
func Supported() []language.Tag {
	return messages.Languages()
}

// MatchLocale picks the best supported language for an Accept-Language header or
// a bare tag such as "es".
func MatchLocale(accept string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	base, _ := tag.Base()
	return language.Make(base.String())
}

// NewPrinter returns a printer bound to the validation catalog.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Message renders the violation with p.
func (e FieldError) Message(p *message.Printer) string {
	key := e.Field + "." + string(e.Kind)
	if fieldKeys[key] {
		return p.Sprintf(key, e.Args...)
	}
	label := p.Sprintf("label." + e.Field)
	return p.Sprintf("kind."+string(e.Kind), append([]any{label}, e.Args...)...)
}
