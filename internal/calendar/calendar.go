// Package calendar provides day-granularity date arithmetic for the
// projection engine. Time of day and timezones are normalized away so that
// all comparisons happen at day level.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the wire format for dates.
const DateFormat = "2006-01-02"

// Date represents a calendar date with day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day. Out of
// range values are normalized the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// FromTime truncates a time.Time to its calendar date.
func FromTime(t time.Time) Date {
	return New(t.Date())
}

// time returns the canonical midnight-UTC representation of the date.
func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// AddDays returns the date i days after d (i may be negative).
func (d Date) AddDays(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonths returns the date i months after d. The day of month is preserved
// and normalized by the standard library rules; callers that need clamping
// use Occurrence instead.
func (d Date) AddMonths(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// SameMonth reports whether two dates fall in the same calendar month.
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// String formats the date as 2006-01-02.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Label formats the date as a short human label, e.g. "5 Apr".
func (d Date) Label() string { return d.time().Format("2 Jan") }

// Parse parses a 2006-01-02 date string.
func Parse(str string) (Date, error) {
	t, err := time.Parse(DateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON encodes the date as a 2006-01-02 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a 2006-01-02 string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a day-of-month to the length of the given month, so that
// e.g. day 31 in February resolves to the 28th (or 29th) rather than rolling
// over into March.
func ClampDay(day, year int, month time.Month) int {
	if n := DaysIn(year, month); day > n {
		return n
	}
	return day
}

// Occurrence returns the date formed by the given month and the clamped
// day-of-month.
func Occurrence(year int, month time.Month, day int) Date {
	return New(year, month, ClampDay(day, year, month))
}

// NextOnOrAfter returns the first occurrence of the given day-of-month on or
// after from, clamping within each candidate month. December rolls over into
// January of the next year.
func NextOnOrAfter(day int, from Date) Date {
	occ := Occurrence(from.Year(), from.Month(), day)
	if occ.Before(from) {
		y, m := NextMonth(from.Year(), from.Month())
		occ = Occurrence(y, m, day)
	}
	return occ
}

// NextMonth returns the year and month following the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// MonthsBetween returns the number of whole calendar-month steps from the
// month of a to the month of b. It is zero when both fall in the same month
// and negative when b's month precedes a's.
func MonthsBetween(a, b Date) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// Later returns the later of two dates.
func Later(a, b Date) Date {
	if a.Before(b) {
		return b
	}
	return a
}
