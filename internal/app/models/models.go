package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Collection names used as storage keys
const (
	CollectionStudents = "students"
	CollectionRoutes   = "routes"
	CollectionDrivers  = "drivers"
	CollectionVehicles = "vehicles"
)

// Collections lists every stored collection in export order.
var Collections = []string{CollectionStudents, CollectionRoutes, CollectionDrivers, CollectionVehicles}

// Status is the lifecycle state of an entity
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
)

// Entity is implemented by every stored record.
type Entity interface {
	GetID() string
}

// Date is a calendar date without time of day, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate keeps only the calendar part of t.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the date and timestamp layouts understood by the validators.
func ParseDate(s string) (Date, error) {
	t, err := helpers.ParseDate(s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// At returns midnight of the same calendar date in loc.
func (d Date) At(loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(helpers.DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// optionalString returns nil for missing or blank values.
func optionalString(f validation.Fields, key string) *string {
	v := f.Trimmed(key)
	if v == "" {
		return nil
	}
	return &v
}

func fieldOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func intField(f validation.Fields, key string) int {
	n, _ := f.Number(key)
	return int(n)
}

func dateField(f validation.Fields, key string) Date {
	d, _ := ParseDate(f.String(key))
	return d
}

// StringValue dereferences an optional field.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
