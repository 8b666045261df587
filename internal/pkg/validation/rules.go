package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// National identity card: 7-8 digits with an optional regional suffix
	NationalIDPattern = `(?i)^\d{7,8}(-?[A-Z]{1,4})?$`

	// Strict variant accepting only the issuing department codes
	NationalIDStrictPattern = `(?i)^\d{7,8}(-?(SC|LP|CBBA|TJA|ORU|PTS|BNI|PND|SCZ))?$`

	// Driver license: category letters followed by the license number
	LicensePattern = `(?i)^[A-Z]{1,4}-?\d{6,8}$`

	// Plate after normalization: 3-4 digits and 3 letters
	PlatePattern = `^\d{3,4}[A-Z]{3}$`

	// Clock time HH:MM, 24h
	TimePattern = `^([01]\d|2[0-3]):([0-5]\d)$`

	AlphaPattern        = `^[a-záéíóúñA-ZÁÉÍÓÚÑ\s]+$`
	AlphanumericPattern = `^[a-záéíóúñA-ZÁÉÍÓÚÑ0-9\s]+$`

	AddressMinLength   = 10
	RouteNameMinLength = 3
	NameMinTokens      = 2

	MinStudentAge = 3
	MaxStudentAge = 18

	MinVehicleYear  = 1990
	MinCapacity     = 1
	MaxCapacity     = 50
	LicenseWarnDays = 30
)

// NationalIDRegionCodes lists the suffixes accepted by the strict national id rule.
var NationalIDRegionCodes = []string{"SC", "LP", "CBBA", "TJA", "ORU", "PTS", "BNI", "PND", "SCZ"}

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	NationalID       *regexp.Regexp
	NationalIDStrict *regexp.Regexp
	License          *regexp.Regexp
	Plate            *regexp.Regexp
	Time             *regexp.Regexp
	Alpha            *regexp.Regexp
	Alphanumeric     *regexp.Regexp
	NonDigit         *regexp.Regexp
	PlateSeparators  *regexp.Regexp
}{
	NationalID:       regexp.MustCompile(NationalIDPattern),
	NationalIDStrict: regexp.MustCompile(NationalIDStrictPattern),
	License:          regexp.MustCompile(LicensePattern),
	Plate:            regexp.MustCompile(PlatePattern),
	Time:             regexp.MustCompile(TimePattern),
	Alpha:            regexp.MustCompile(AlphaPattern),
	Alphanumeric:     regexp.MustCompile(AlphanumericPattern),
	NonDigit:         regexp.MustCompile(`\D`),
	PlateSeparators:  regexp.MustCompile(`[\s-]`),
}

// String validation
type StringValidation struct {
	Value   string
	MinLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value: value,
	}
}

// WithMinLength sets minimum length in characters
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}

	if v.MinLen > 0 && utf8.RuneCountInString(v.Value) < v.MinLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value  float64
	Min    float64
	Max    float64
	hasMin bool
	hasMax bool
	// Integer rejects values with a fractional part
	Integer bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value float64) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value (inclusive)
func (v *NumericValidation) WithMin(min float64) *NumericValidation {
	v.Min, v.hasMin = min, true
	return v
}

// WithMax sets maximum value (inclusive)
func (v *NumericValidation) WithMax(max float64) *NumericValidation {
	v.Max, v.hasMax = max, true
	return v
}

// WithInteger requires a whole number
func (v *NumericValidation) WithInteger() *NumericValidation {
	v.Integer = true
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Integer && v.Value != float64(int64(v.Value)) {
		return false
	}
	if v.hasMin && v.Value < v.Min {
		return false
	}
	if v.hasMax && v.Value > v.Max {
		return false
	}
	return true
}
