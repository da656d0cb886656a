// Package dateutil holds calendar-date and wall-clock helpers shared by the
// schedule engine, the CSV pipeline and the HTTP layer. Dates are plain
// calendar days with no timezone component.
package dateutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a civil calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a strict "YYYY-MM-DD" value.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != len(dateLayout) {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(raw string) Date {
	d, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// IsDate reports whether raw is a valid "YYYY-MM-DD" date.
func IsDate(raw string) bool {
	_, err := ParseDate(raw)
	return err == nil
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// In returns midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func (d Date) Weekday() int {
	return int(d.Time().Weekday())
}

// AddDays shifts the date by n days, normalising month and year overflow.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// DaysUntil returns the whole number of days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

// StartOfWeek returns the first day of the week containing d.
func StartOfWeek(d Date, weekStart time.Weekday) Date {
	offset := (d.Weekday() - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// ParseMonth parses "YYYY-MM" and returns the first and last day of that month.
func ParseMonth(raw string) (Date, Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != len(monthLayout) {
		return Date{}, Date{}, fmt.Errorf("invalid month %q: expected YYYY-MM", raw)
	}
	t, err := time.Parse(monthLayout, raw)
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("invalid month %q: %w", raw, err)
	}
	first, last := MonthBounds(t.Year(), t.Month())
	return first, last, nil
}

// MonthBounds returns the first and last date of a month.
func MonthBounds(year int, month time.Month) (Date, Date) {
	first := Date{Year: year, Month: month, Day: 1}
	last := FromTime(first.Time().AddDate(0, 1, -1))
	return first, last
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
