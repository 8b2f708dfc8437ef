// Package calendar provides the date arithmetic the layout engine is built on:
// civil dates, week numbering rules, week and month views, the per-date data
// item bound into date containers, and holiday providers.
//
// All types are values or immutable after construction and are safe to share.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the textual form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without time-of-day or zone. It is comparable and
// can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for year, month and day. Out of range
// values roll over the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight of d in loc (UTC when loc is nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// noon is used for arithmetic so DST shifts never move the day.
func (d Date) noon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.noon().AddDate(0, 0, n))
}

// AddMonths returns d shifted by n months, clamping the day to the target
// month's length (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.Year, d.Month+time.Month(n), 1)
	last := first.LastOfMonth()
	if d.Day > last.Day {
		return last
	}
	return Date{Year: first.Year, Month: first.Month, Day: d.Day}
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.noon().Weekday()
}

// YearDay returns the day of the year of d, in [1, 366].
func (d Date) YearDay() int {
	return d.noon().YearDay()
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return NewDate(d.Year, d.Month+1, 0)
}

// SameMonth reports whether d and o fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// DaysUntil returns the signed number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.noon().Sub(d.noon()) / (24 * time.Hour))
}

// String returns d formatted as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthKey returns d's month formatted as YYYY-MM.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return DateOf(t), nil
}

// ParseWeekday parses an English weekday name ("monday", "Mon", ...).
func ParseWeekday(s string) (time.Weekday, bool) {
	if len(s) < 2 {
		return 0, false
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if len(s) <= len(name) && equalFoldPrefix(name, s) {
			return wd, true
		}
	}
	return 0, false
}

// equalFoldPrefix reports whether prefix case-insensitively prefixes name and
// is either the full name or at least three letters long.
func equalFoldPrefix(name, prefix string) bool {
	if len(prefix) < 3 && len(prefix) != len(name) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := name[i], prefix[i]
		if a|0x20 != b|0x20 {
			return false
		}
	}
	return true
}
