package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/mototransporte/internal/pkg/helpers"
)

var validate = validator.New()

// Required is false for nil, empty and whitespace-only values.
func Required(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(*string); ok && s == nil {
		return false
	}
	return strings.TrimSpace(toString(v)) != ""
}

// NationalID accepts 7-8 digits with an optional, optionally hyphenated, 1-4 letter suffix.
func NationalID(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.NationalID).Validate()
}

// NationalIDStrict is NationalID restricted to the issuing department codes.
func NationalIDStrict(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.NationalIDStrict).Validate()
}

// NormalizeNationalID is the comparison form used for uniqueness checks.
func NormalizeNationalID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Phone accepts 8 local digits or the 591 country prefix plus 8 digits.
func Phone(s string) bool {
	digits := CompiledPatterns.NonDigit.ReplaceAllString(s, "")
	return len(digits) == 8 || (len(digits) == 11 && strings.HasPrefix(digits, "591"))
}

// FormatPhone renders a valid phone number for display.
func FormatPhone(s string) string {
	digits := CompiledPatterns.NonDigit.ReplaceAllString(s, "")
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "591"):
		return "+591 " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 8:
		return digits[:3] + "-" + digits[3:]
	default:
		return s
	}
}

// License accepts 1-4 category letters, an optional hyphen and 6-8 digits.
func License(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.License).Validate()
}

// NormalizePlate strips spaces and hyphens and upper-cases the plate.
func NormalizePlate(s string) string {
	return strings.ToUpper(CompiledPatterns.PlateSeparators.ReplaceAllString(s, ""))
}

// Plate validates the normalized plate.
func Plate(s string) bool {
	return NewStringValidation(NormalizePlate(s)).WithPattern(CompiledPatterns.Plate).Validate()
}

// Time accepts HH:MM on a 24 hour clock.
func Time(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Time).Validate()
}

// Date reports whether s parses to a calendar date.
func Date(s string) bool {
	_, err := helpers.ParseDate(s, time.UTC)
	return err == nil
}

// PastDate reports whether s is strictly before now.
func PastDate(s string, now time.Time) bool {
	d, err := helpers.ParseDate(s, now.Location())
	return err == nil && d.Before(now)
}

// FutureDate reports whether s is strictly after now.
func FutureDate(s string, now time.Time) bool {
	d, err := helpers.ParseDate(s, now.Location())
	return err == nil && d.After(now)
}

// MinAge reports whether at least bound whole years have elapsed since birth.
func MinAge(birth string, bound int, now time.Time) bool {
	d, err := helpers.ParseDate(birth, now.Location())
	if err != nil {
		return false
	}
	return helpers.CalculateAge(d, now) >= bound
}

// MaxAge reports whether the bound-th birthday has not passed yet. A person on
// their bound-th birthday still qualifies, one day later they no longer do.
func MaxAge(birth string, bound int, now time.Time) bool {
	d, err := helpers.ParseDate(birth, now.Location())
	if err != nil {
		return false
	}
	return !helpers.StartOfDay(now).After(helpers.Anniversary(d, bound, now.Location()))
}

// Alpha accepts letters, accented vowels, ñ and whitespace.
func Alpha(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Alpha).Validate()
}

// Alphanumeric is Alpha plus digits.
func Alphanumeric(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Alphanumeric).Validate()
}

// FullName requires at least two words made only of letters.
func FullName(s string) bool {
	if !Required(s) {
		return false
	}
	return len(strings.Fields(s)) >= NameMinTokens && Alpha(s)
}

// MinLength counts characters, not bytes.
func MinLength(s string, min int) bool {
	return NewStringValidation(s).WithMinLength(min).Validate()
}

// Address requires a non-empty value of at least AddressMinLength characters.
func Address(s string) bool {
	return Required(s) && MinLength(s, AddressMinLength)
}

// Email checks the address shape.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Range coerces v to a number and checks min <= v <= max.
func Range(v any, min, max float64) bool {
	n, ok := toNumber(v)
	return ok && NewNumericValidation(n).WithMin(min).WithMax(max).Validate()
}

// Integer reports whether v coerces to a whole number.
func Integer(v any) bool {
	n, ok := toNumber(v)
	return ok && NewNumericValidation(n).WithInteger().Validate()
}

// VehicleCapacity accepts whole numbers of passengers between MinCapacity and MaxCapacity.
func VehicleCapacity(v any) bool {
	n, ok := toNumber(v)
	return ok && NewNumericValidation(n).WithInteger().WithMin(float64(MinCapacity)).WithMax(float64(MaxCapacity)).Validate()
}

// MaxVehicleYear is next calendar year relative to now.
func MaxVehicleYear(now time.Time) int {
	return now.Year() + 1
}
