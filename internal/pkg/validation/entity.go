package validation

import (
	"strings"
	"time"
)

// Options configures a Validator.
type Options struct {
	// StrictNationalIDSuffix restricts national id suffixes to NationalIDRegionCodes.
	StrictNationalIDSuffix bool
	// Now returns the evaluation time for date and age rules. Defaults to time.Now.
	Now func() time.Time
}

// Validator applies the per-entity rule sets. Every rule on every field is
// evaluated so that all problems are reported at once.
type Validator struct {
	strict bool
	now    func() time.Time
}

// New creates a Validator.
func New(opts Options) *Validator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Validator{strict: opts.StrictNationalIDSuffix, now: now}
}

// Now exposes the evaluation clock.
func (v *Validator) Now() time.Time {
	return v.now()
}

func (v *Validator) nationalID(s string) bool {
	if v.strict {
		return NationalIDStrict(s)
	}
	return NationalID(s)
}

// Status values accepted per entity.
var (
	PersonStatuses  = []string{"active", "inactive"}
	VehicleStatuses = []string{"available", "maintenance", "inactive"}
)

// Student checks a student payload.
func (v *Validator) Student(f Fields) *Errors {
	errs := &Errors{}
	now := v.now()

	v.checkNationalID(errs, f)
	checkFullName(errs, f)

	switch birth := f.Trimmed(FieldBirthDate); {
	case !Required(birth):
		errs.Add(FieldBirthDate, KindRequired)
	case !Date(birth):
		errs.Add(FieldBirthDate, KindFormat)
	case !PastDate(birth, now):
		errs.Add(FieldBirthDate, KindPastDate)
	case !MinAge(birth, MinStudentAge, now):
		errs.Add(FieldBirthDate, KindMinAge, MinStudentAge)
	case !MaxAge(birth, MaxStudentAge, now):
		errs.Add(FieldBirthDate, KindMaxAge, MaxStudentAge)
	}

	switch addr := f.String(FieldAddress); {
	case !Required(addr):
		errs.Add(FieldAddress, KindRequired)
	case !Address(strings.TrimSpace(addr)):
		errs.Add(FieldAddress, KindMinLength, AddressMinLength)
	}

	checkPhone(errs, f)
	checkOptionalEmail(errs, f, FieldParentEmail)
	checkStatus(errs, f, PersonStatuses)
	return errs
}

// Driver checks a driver payload.
func (v *Validator) Driver(f Fields) *Errors {
	errs := &Errors{}
	now := v.now()

	v.checkNationalID(errs, f)
	checkFullName(errs, f)
	checkPhone(errs, f)

	switch lic := f.Trimmed(FieldLicenseNumber); {
	case !Required(lic):
		errs.Add(FieldLicenseNumber, KindRequired)
	case !License(lic):
		errs.Add(FieldLicenseNumber, KindFormat)
	}

	switch exp := f.Trimmed(FieldLicenseExpiry); {
	case !Required(exp):
		errs.Add(FieldLicenseExpiry, KindRequired)
	case !Date(exp):
		errs.Add(FieldLicenseExpiry, KindFormat)
	case !FutureDate(exp, now):
		errs.Add(FieldLicenseExpiry, KindFutureDate)
	}

	checkOptionalEmail(errs, f, FieldEmail)
	checkStatus(errs, f, PersonStatuses)
	return errs
}

// Vehicle checks a vehicle payload.
func (v *Validator) Vehicle(f Fields) *Errors {
	errs := &Errors{}
	now := v.now()

	switch plate := f.Trimmed(FieldPlate); {
	case !Required(plate):
		errs.Add(FieldPlate, KindRequired)
	case !Plate(plate):
		errs.Add(FieldPlate, KindFormat)
	}

	switch brand := f.Trimmed(FieldBrand); {
	case !Required(brand):
		errs.Add(FieldBrand, KindRequired)
	case !Alpha(brand):
		errs.Add(FieldBrand, KindFormat)
	}

	switch model := f.Trimmed(FieldModel); {
	case !Required(model):
		errs.Add(FieldModel, KindRequired)
	case !Alphanumeric(model):
		errs.Add(FieldModel, KindFormat)
	}

	maxYear := MaxVehicleYear(now)
	switch year := f[FieldYear]; {
	case !Required(year):
		errs.Add(FieldYear, KindRequired)
	case !Integer(year) || !Range(year, float64(MinVehicleYear), float64(maxYear)):
		errs.Add(FieldYear, KindRange, MinVehicleYear, maxYear)
	}

	switch capacity := f[FieldCapacity]; {
	case !Required(capacity):
		errs.Add(FieldCapacity, KindRequired)
	case !VehicleCapacity(capacity):
		errs.Add(FieldCapacity, KindRange, MinCapacity, MaxCapacity)
	}

	checkStatus(errs, f, VehicleStatuses)
	return errs
}

// Route checks a route payload, including pickup before drop-off.
func (v *Validator) Route(f Fields) *Errors {
	errs := &Errors{}

	switch name := f.Trimmed(FieldName); {
	case !Required(name):
		errs.Add(FieldName, KindRequired)
	case !MinLength(name, RouteNameMinLength):
		errs.Add(FieldName, KindMinLength, RouteNameMinLength)
	}

	if !Required(f[FieldZone]) {
		errs.Add(FieldZone, KindRequired)
	}

	pickup, dropoff := f.Trimmed(FieldPickupTime), f.Trimmed(FieldDropoffTime)
	for _, t := range []struct{ field, value string }{
		{FieldPickupTime, pickup},
		{FieldDropoffTime, dropoff},
	} {
		switch {
		case !Required(t.value):
			errs.Add(t.field, KindRequired)
		case !Time(t.value):
			errs.Add(t.field, KindFormat)
		}
	}

	// Zero padded HH:MM compares correctly as text.
	if pickup != "" && dropoff != "" && pickup >= dropoff {
		errs.Add(FieldDropoffTime, KindOrder)
	}

	checkStatus(errs, f, PersonStatuses)
	return errs
}

func (v *Validator) checkNationalID(errs *Errors, f Fields) {
	switch id := f.Trimmed(FieldNationalID); {
	case !Required(id):
		errs.Add(FieldNationalID, KindRequired)
	case !v.nationalID(id):
		errs.Add(FieldNationalID, KindFormat)
	}
}

func checkFullName(errs *Errors, f Fields) {
	switch name := f.Trimmed(FieldFullName); {
	case !Required(name):
		errs.Add(FieldFullName, KindRequired)
	case !FullName(name):
		errs.Add(FieldFullName, KindFormat)
	}
}

func checkPhone(errs *Errors, f Fields) {
	switch phone := f.Trimmed(FieldPhone); {
	case !Required(phone):
		errs.Add(FieldPhone, KindRequired)
	case !Phone(phone):
		errs.Add(FieldPhone, KindFormat)
	}
}

func checkOptionalEmail(errs *Errors, f Fields, field string) {
	if email := f.Trimmed(field); email != "" && !Email(email) {
		errs.Add(field, KindFormat)
	}
}

func checkStatus(errs *Errors, f Fields, allowed []string) {
	status := f.Trimmed(FieldStatus)
	if status == "" {
		return
	}
	for _, s := range allowed {
		if s == status {
			return
		}
	}
	errs.Add(FieldStatus, KindEnum, strings.Join(allowed, ", "))
}
