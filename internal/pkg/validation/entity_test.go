package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"golang.org/x/text/language"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newTestValidator(strict bool) *Validator {
	return New(Options{StrictNationalIDSuffix: strict, Now: func() time.Time { return fixedNow }})
}

func validStudent() Fields {
	return Fields{
		FieldNationalID:  "1234567-LP",
		FieldFullName:    "Lucía Mamani Quispe",
		FieldBirthDate:   "2015-03-09",
		FieldAddress:     "Calle Sucre 123, Zona Central",
		FieldPhone:       "78901234",
		FieldParentEmail: "padre@example.com",
	}
}

func TestStudentValid(t *testing.T) {
	errs := newTestValidator(false).Student(validStudent())
	assert.True(t, errs.Valid(), errs.Messages(language.English))
	assert.NoError(t, errs.Err())
}

func TestStudentAccumulatesEveryViolation(t *testing.T) {
	errs := newTestValidator(false).Student(Fields{
		FieldNationalID:  "12",
		FieldBirthDate:   "2024-01-01",
		FieldAddress:     "short",
		FieldPhone:       "123",
		FieldParentEmail: "nope",
	})

	require.False(t, errs.Valid())
	assert.True(t, errs.Has(FieldNationalID, KindFormat))
	assert.True(t, errs.Has(FieldFullName, KindRequired))
	assert.True(t, errs.Has(FieldBirthDate, KindMinAge))
	assert.True(t, errs.Has(FieldAddress, KindMinLength))
	assert.True(t, errs.Has(FieldPhone, KindFormat))
	assert.True(t, errs.Has(FieldParentEmail, KindFormat))
	assert.Len(t, errs.Fields, 6)

	err := errs.Err()
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestStudentBirthDateChainStopsAtFirstFailure(t *testing.T) {
	v := newTestValidator(false)
	tests := []struct {
		birth string
		kind  Kind
	}{
		{"", KindRequired},
		{"09/03/2015", KindFormat},
		{"2027-01-01", KindPastDate},
		{"2024-01-01", KindMinAge},
		{"2000-01-01", KindMaxAge},
	}
	for _, tt := range tests {
		f := validStudent()
		f[FieldBirthDate] = tt.birth
		errs := v.Student(f)
		require.Len(t, errs.Fields, 1, tt.birth)
		assert.Equal(t, tt.kind, errs.Fields[0].Kind, tt.birth)
	}
}

func TestStudentOptionalEmailAndStatus(t *testing.T) {
	v := newTestValidator(false)

	f := validStudent()
	delete(f, FieldParentEmail)
	assert.True(t, v.Student(f).Valid())

	f[FieldParentEmail] = nil
	assert.True(t, v.Student(f).Valid())

	f[FieldStatus] = "graduated"
	assert.True(t, v.Student(f).Has(FieldStatus, KindEnum))
}

func TestStrictSuffixOption(t *testing.T) {
	f := validStudent()
	f[FieldNationalID] = "1234567-XY"

	assert.True(t, newTestValidator(false).Student(f).Valid())
	assert.True(t, newTestValidator(true).Student(f).Has(FieldNationalID, KindFormat))
}

func TestDriver(t *testing.T) {
	v := newTestValidator(false)
	f := Fields{
		FieldNationalID:    "7654321",
		FieldFullName:      "Juan Carlos Rojas",
		FieldPhone:         "+591 71234567",
		FieldLicenseNumber: "B-1234567",
		FieldLicenseExpiry: "2027-05-01",
		FieldStatus:        "active",
	}
	assert.True(t, v.Driver(f).Valid())

	f[FieldLicenseExpiry] = "2026-10-17"
	assert.True(t, v.Driver(f).Has(FieldLicenseExpiry, KindFutureDate))

	f[FieldLicenseExpiry] = "2027-05-01"
	f[FieldEmail] = "juan@"
	f[FieldLicenseNumber] = "1234567"
	errs := v.Driver(f)
	assert.True(t, errs.Has(FieldEmail, KindFormat))
	assert.True(t, errs.Has(FieldLicenseNumber, KindFormat))
}

func TestVehicle(t *testing.T) {
	v := newTestValidator(false)
	f := Fields{
		FieldPlate:    "1234ABC",
		FieldBrand:    "Toyota",
		FieldModel:    "Hiace",
		FieldYear:     2020.0,
		FieldCapacity: 15.0,
	}
	assert.True(t, v.Vehicle(f).Valid())

	f[FieldYear] = 2028.0
	f[FieldCapacity] = "51"
	f[FieldBrand] = "Toyota 2"
	errs := v.Vehicle(f)
	assert.True(t, errs.Has(FieldYear, KindRange))
	assert.Equal(t, []any{MinVehicleYear, 2027}, errs.Fields[1].Args)
	assert.True(t, errs.Has(FieldCapacity, KindRange))
	assert.True(t, errs.Has(FieldBrand, KindFormat))

	f = Fields{}
	errs = v.Vehicle(f)
	for _, field := range []string{FieldPlate, FieldBrand, FieldModel, FieldYear, FieldCapacity} {
		assert.True(t, errs.Has(field, KindRequired), field)
	}
}

func TestRouteOrdering(t *testing.T) {
	v := newTestValidator(false)
	f := Fields{
		FieldName:        "Ruta Norte",
		FieldZone:        "Norte",
		FieldPickupTime:  "08:00",
		FieldDropoffTime: "07:00",
	}
	errs := v.Route(f)
	require.Len(t, errs.Fields, 1)
	assert.Equal(t, FieldDropoffTime, errs.Fields[0].Field)
	assert.Equal(t, KindOrder, errs.Fields[0].Kind)

	f[FieldPickupTime], f[FieldDropoffTime] = "07:00", "08:00"
	assert.True(t, v.Route(f).Valid())

	f[FieldDropoffTime] = "07:00"
	assert.True(t, v.Route(f).Has(FieldDropoffTime, KindOrder))
}

func TestRouteRequiredFields(t *testing.T) {
	errs := newTestValidator(false).Route(Fields{FieldName: "AB", FieldPickupTime: "7:00"})

	assert.True(t, errs.Has(FieldName, KindMinLength))
	assert.True(t, errs.Has(FieldZone, KindRequired))
	assert.True(t, errs.Has(FieldPickupTime, KindFormat))
	assert.True(t, errs.Has(FieldDropoffTime, KindRequired))
}

func TestMessagesAreLocalized(t *testing.T) {
	errs := Single(FieldBirthDate, KindMaxAge, MaxStudentAge)
	errs.Add(FieldZone, KindRequired)

	assert.Equal(t, []string{
		"The student cannot be older than 18",
		"Zone is required",
	}, errs.Messages(language.English))
	assert.Equal(t, []string{
		"El estudiante no puede tener más de 18 años",
		"Campo obligatorio: Zona",
	}, errs.Messages(language.Spanish))
	assert.Contains(t, errs.Error(), "validation failed")
}

func TestMatchLocale(t *testing.T) {
	assert.Equal(t, language.Spanish, MatchLocale("es-BO,es;q=0.9,en;q=0.8", language.English))
	assert.Equal(t, language.English, MatchLocale("en-US", language.Spanish))
	assert.Equal(t, language.Spanish, MatchLocale("", language.Spanish))
}

func TestFieldsCoercion(t *testing.T) {
	f := Fields{"a": 2020.0, "b": nil, "c": " x ", "d": true}

	assert.Equal(t, "2020", f.String("a"))
	assert.Equal(t, "", f.String("b"))
	assert.Equal(t, "x", f.Trimmed("c"))
	assert.False(t, f.Has("b"))
	assert.True(t, f.Has("d"))

	merged := f.Merge(Fields{"a": "2021", "e": 1})
	assert.Equal(t, "2021", merged.String("a"))
	assert.Equal(t, "1", merged.String("e"))
	assert.Equal(t, 2020.0, f["a"])
}
