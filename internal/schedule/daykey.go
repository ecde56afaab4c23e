package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// dayLayout is the canonical wire and save-map key form for calendar days.
const dayLayout = "2006-01-02"

// DayKey derives the save-map key for a calendar day. Every call site that
// indexes UserData.Save goes through this function.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDayKey parses a YYYY-MM-DD key back into a day-granular time.
func ParseDayKey(key string) (DayTime, error) {
	ts, err := time.Parse(dayLayout, key)
	if err != nil {
		return DayTime{}, fmt.Errorf("schedule: invalid day key %q: %w", key, err)
	}
	return DayTime{ts}, nil
}

// StartOfDay truncates a timestamp to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayTime is a calendar-day-granular timestamp. It serializes as YYYY-MM-DD
// and tolerates RFC 3339 strings from legacy payloads, normalizing either to
// start of day.
type DayTime struct {
	time.Time
}

// DayOf normalizes an arbitrary timestamp to its calendar day.
func DayOf(t time.Time) DayTime {
	if t.IsZero() {
		return DayTime{}
	}
	return DayTime{StartOfDay(t)}
}

// NewDay builds a day-granular timestamp in UTC.
func NewDay(year int, month time.Month, day int) DayTime {
	return DayTime{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Key returns the save-map key for this day.
func (d DayTime) Key() string {
	return DayKey(d.Time)
}

// MarshalJSON renders the day as a YYYY-MM-DD string, or null when unset.
func (d DayTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dayLayout))
}

// UnmarshalJSON rehydrates a day from its string form. Absent, null and
// unparseable values leave the day unset; a definition without a start day
// is treated as not yet started rather than an error.
func (d *DayTime) UnmarshalJSON(data []byte) error {
	d.Time = time.Time{}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil || raw == "" {
		return nil
	}

	for _, layout := range []string{dayLayout, time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			d.Time = StartOfDay(ts)
			return nil
		}
	}
	return nil
}
