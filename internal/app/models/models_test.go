package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2015-03-09"`), &d))
	assert.Equal(t, "2015-03-09", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2015-03-09"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`"2015-03-09T00:00:00.000Z"`), &d))
	assert.Equal(t, "2015-03-09", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
	out, err = json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2020"`), &d))
}

func TestDateAtKeepsCalendarDay(t *testing.T) {
	d, err := ParseDate("2026-11-01")
	require.NoError(t, err)

	loc := time.FixedZone("BOT", -4*3600)
	at := d.At(loc)
	assert.Equal(t, 1, at.Day())
	assert.Equal(t, time.November, at.Month())
	assert.Equal(t, loc, at.Location())
}

func TestStudentApplyOnlyTouchesPresentKeys(t *testing.T) {
	email := "tutor@example.com"
	s := Student{ID: "s1", FullName: "Ana Pérez", Phone: "78901234", ParentEmail: &email, Status: StatusActive}

	s.Apply(validation.Fields{
		validation.FieldPhone:   " 71234567 ",
		validation.FieldRouteID: "r1",
		validation.FieldStatus:  "",
	})

	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "Ana Pérez", s.FullName)
	assert.Equal(t, "71234567", s.Phone)
	assert.Equal(t, "r1", StringValue(s.RouteID))
	assert.Equal(t, email, StringValue(s.ParentEmail))
	assert.Equal(t, StatusActive, s.Status)

	s.Apply(validation.Fields{validation.FieldParentEmail: nil, validation.FieldNationalID: " 1234567-lp "})
	assert.Nil(t, s.ParentEmail)
	assert.Equal(t, "1234567-LP", s.NationalID)
}

func TestStudentAge(t *testing.T) {
	s := Student{BirthDate: Date{time.Date(2015, 10, 18, 0, 0, 0, 0, time.UTC)}}
	now := time.Date(2026, 10, 17, 23, 0, 0, 0, time.FixedZone("BOT", -4*3600))
	assert.Equal(t, 10, s.Age(now))
}

func TestVehicleApplyNormalizesPlate(t *testing.T) {
	var v Vehicle
	v.Apply(validation.Fields{
		validation.FieldPlate:    "1234-abc",
		validation.FieldYear:     "2020",
		validation.FieldCapacity: 15.0,
	})

	assert.Equal(t, "1234ABC", v.Plate)
	assert.Equal(t, 2020, v.Year)
	assert.Equal(t, 15, v.Capacity)
	assert.Equal(t, 2020, v.Fields()[validation.FieldYear])
}

func TestRouteIncomplete(t *testing.T) {
	d, veh, empty := "d1", "v1", ""

	assert.True(t, Route{}.Incomplete())
	assert.True(t, Route{DriverID: &d}.Incomplete())
	assert.True(t, Route{DriverID: &d, VehicleID: &empty}.Incomplete())
	assert.False(t, Route{DriverID: &d, VehicleID: &veh}.Incomplete())
}

func TestRecordJSONUsesNullForMissingOptionals(t *testing.T) {
	out, err := json.Marshal(Driver{ID: "d1", LicenseExpiry: Date{time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)}})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Contains(t, m, "email")
	assert.Nil(t, m["email"])
	assert.Equal(t, "2027-05-01", m["licenseExpiry"])
}
