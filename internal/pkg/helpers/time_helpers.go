package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar date format used in stored records and export file names.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a calendar date or timestamp. Date-only values are placed at
// midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalculateAge returns the whole years elapsed between birth and now, one less
// when the birthday has not been reached yet this year.
func CalculateAge(birth, now time.Time) int {
	birth = birth.In(now.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Anniversary returns the calendar date years after birth, in now's location.
func Anniversary(birth time.Time, years int, loc *time.Location) time.Time {
	if loc != nil {
		birth = birth.In(loc)
	}
	return StartOfDay(birth).AddDate(years, 0, 0)
}

// WithinDays reports whether date falls in [today, today+days] at day granularity.
func WithinDays(date, now time.Time, days int) bool {
	today := StartOfDay(now)
	day := StartOfDay(date.In(now.Location()))
	return !day.Before(today) && !day.After(today.AddDate(0, 0, days))
}
