package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNationalID(t *testing.T) {
	valid := []string{"1234567", "12345678", "1234567-SC", "12345678-CBBA", "1234567LP", "1234567-x", "12345678abcd"}
	for _, id := range valid {
		assert.True(t, NationalID(id), id)
	}

	invalid := []string{"", "123456", "123456789", "1234567-ABCDE", "1234567--SC", "ABC12345", "1234 567"}
	for _, id := range invalid {
		assert.False(t, NationalID(id), id)
	}
}

func TestNationalIDStrict(t *testing.T) {
	for _, code := range NationalIDRegionCodes {
		assert.True(t, NationalIDStrict("1234567-"+code), code)
	}
	assert.True(t, NationalIDStrict("12345678"))
	assert.True(t, NationalIDStrict("1234567cbba"))
	assert.False(t, NationalIDStrict("1234567-XY"))
	assert.True(t, NationalID("1234567-XY"))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"78901234", true},
		{"789-01234", true},
		{"+591 78901234", true},
		{"59178901234", true},
		{"(591) 7890-1234", true},
		{"7890123", false},
		{"789012345", false},
		{"49178901234", false},
		{"5917890123", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Phone(tt.in), tt.in)
	}
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "+591 789-01234", FormatPhone("59178901234"))
	assert.Equal(t, "789-01234", FormatPhone("78901234"))
	assert.Equal(t, "12", FormatPhone("12"))
}

func TestLicense(t *testing.T) {
	for _, s := range []string{"A-1234567", "B12345678", "PROF-123456", "c-1234567"} {
		assert.True(t, License(s), s)
	}
	for _, s := range []string{"", "1234567", "ABCDE-1234567", "A-12345", "A-123456789", "A_1234567"} {
		assert.False(t, License(s), s)
	}
}

func TestPlateNormalization(t *testing.T) {
	assert.True(t, Plate("1234ABC"))
	assert.True(t, Plate("1234-ABC"))
	assert.True(t, Plate("1234 ABC"))
	assert.True(t, Plate("123abc"))
	assert.Equal(t, NormalizePlate("1234ABC"), NormalizePlate("1234-abc"))
	assert.Equal(t, NormalizePlate("1234ABC"), NormalizePlate("1234 ABC"))

	assert.False(t, Plate("12ABC"))
	assert.False(t, Plate("12345ABC"))
	assert.False(t, Plate("1234AB"))
	assert.False(t, Plate(""))
}

func TestTime(t *testing.T) {
	for _, s := range []string{"00:00", "07:30", "23:59", "19:05"} {
		assert.True(t, Time(s), s)
	}
	for _, s := range []string{"24:00", "7:30", "07:60", "0730", "07:3", ""} {
		assert.False(t, Time(s), s)
	}
}

func TestDates(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	assert.True(t, Date("2020-02-29"))
	assert.False(t, Date("2021-02-29"))
	assert.True(t, PastDate("2026-10-17", now))
	assert.False(t, PastDate("2026-10-18", now))
	assert.True(t, FutureDate("2026-10-18", now))
	assert.False(t, FutureDate("2026-10-17", now))
	assert.False(t, FutureDate("not a date", now))
}

func TestAgeBoundaries(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	// 18 years minus one day
	assert.True(t, MaxAge("2008-10-18", 18, now))
	// exactly 18 years
	assert.True(t, MaxAge("2008-10-17", 18, now))
	// 18 years and one day
	assert.False(t, MaxAge("2008-10-16", 18, now))

	assert.True(t, MinAge("2023-10-17", 3, now))
	assert.False(t, MinAge("2023-10-18", 3, now))
	assert.False(t, MinAge("garbage", 3, now))
}

func TestNames(t *testing.T) {
	assert.True(t, FullName("María José Pérez"))
	assert.True(t, FullName("Ana Núñez"))
	assert.False(t, FullName("Ana"))
	assert.False(t, FullName("Ana P3rez"))
	assert.False(t, FullName("   "))

	assert.True(t, Alpha("Toyota"))
	assert.False(t, Alpha("Toyota1"))
	assert.True(t, Alphanumeric("Hiace 2020"))
	assert.False(t, Alphanumeric("Hiace-2020"))
}

func TestNumericRules(t *testing.T) {
	assert.True(t, Range(2020.0, 1990, 2027))
	assert.True(t, Range("2020", 1990, 2027))
	assert.False(t, Range("20x", 1990, 2027))
	assert.False(t, Range(1989, 1990, 2027))

	assert.True(t, VehicleCapacity(15.0))
	assert.True(t, VehicleCapacity("50"))
	assert.False(t, VehicleCapacity(0))
	assert.False(t, VehicleCapacity(51))
	assert.False(t, VehicleCapacity(12.5))
	assert.False(t, VehicleCapacity(nil))
}

func TestRequiredAndEmail(t *testing.T) {
	assert.False(t, Required(nil))
	assert.False(t, Required("  "))
	assert.False(t, Required((*string)(nil)))
	assert.True(t, Required(0.0))
	assert.True(t, Required("x"))

	assert.True(t, Email("padre@example.com"))
	assert.False(t, Email("padre@"))
	assert.False(t, Email("no spaces@example.com"))
}

func TestAddressAndMinLength(t *testing.T) {
	assert.True(t, Address("Av. Busch 1234"))
	assert.False(t, Address("Calle 1"))
	assert.True(t, MinLength("ñañ", 3))
}
