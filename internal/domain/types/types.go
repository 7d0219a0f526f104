// Package types contains common types used across the application.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Date is a pure calendar date: year, month, day. It carries no time of
// day and no timezone, so the same wall-clock date always yields the
// same value regardless of timestamp noise in the source feed.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// dateLayouts are the accepted feed date formats, tried in order.
// ISO first, then the day-first forms common in Dutch spreadsheets.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
}

// ParseDate parses a raw feed value into a Date. The input is trimmed
// first; time-of-day components are discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return Date{Year: y, Month: m, Day: d}, nil
	}
	return Date{}, fmt.Errorf("unrecognized date: %q", s)
}

// DateOf converts a time.Time to a Date, dropping time of day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Key renders the date as YYYY-MM-DD, the canonical session key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MarshalJSON renders the date as its canonical "YYYY-MM-DD" key.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

// UnmarshalJSON parses any accepted feed date format.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Key()
}
