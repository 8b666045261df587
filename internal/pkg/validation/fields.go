package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field names shared by the validators, the stored records and the error details.
const (
	FieldNationalID    = "nationalId"
	FieldFullName      = "fullName"
	FieldBirthDate     = "birthDate"
	FieldAddress       = "address"
	FieldPhone         = "phone"
	FieldParentEmail   = "parentEmail"
	FieldRouteID       = "routeId"
	FieldStatus        = "status"
	FieldLicenseNumber = "licenseNumber"
	FieldLicenseExpiry = "licenseExpiry"
	FieldEmail         = "email"
	FieldPlate         = "plate"
	FieldBrand         = "brand"
	FieldModel         = "model"
	FieldYear          = "year"
	FieldCapacity      = "capacity"
	FieldColor         = "color"
	FieldName          = "name"
	FieldZone          = "zone"
	FieldPickupTime    = "pickupTime"
	FieldDropoffTime   = "dropoffTime"
	FieldDriverID      = "driverId"
	FieldVehicleID     = "vehicleId"
)

// Fields is a raw submitted payload, as decoded from JSON or collected by a form.
type Fields map[string]any

// Has reports whether key is present with a non-null value.
func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// String renders the value at key as text. Missing and null values are empty.
func (f Fields) String(key string) string {
	return toString(f[key])
}

// Trimmed is String with surrounding whitespace removed.
func (f Fields) Trimmed(key string) string {
	return strings.TrimSpace(f.String(key))
}

// Number coerces the value at key to a number.
func (f Fields) Number(key string) (float64, bool) {
	return toNumber(f[key])
}

// Merge returns a copy of f with every key of patch applied on top.
func (f Fields) Merge(patch Fields) Fields {
	out := make(Fields, len(f)+len(patch))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return ""
	}
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		return n, err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
	default:
		return 0, false
	}
}
