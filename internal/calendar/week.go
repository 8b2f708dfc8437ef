package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekRule decides which week is the first week of a year.
type WeekRule int

const (
	// FirstDay starts week 1 on the week containing January 1st.
	FirstDay WeekRule = iota
	// FirstFourDayWeek starts week 1 on the first week with at least four days
	// in the new year. With Monday as first day this is ISO-8601.
	FirstFourDayWeek
	// FirstFullWeek starts week 1 on the first week lying entirely in the new year.
	FirstFullWeek
)

// String returns the configuration name of the rule.
func (r WeekRule) String() string {
	switch r {
	case FirstDay:
		return "first_day"
	case FirstFourDayWeek:
		return "first_four_day_week"
	case FirstFullWeek:
		return "first_full_week"
	default:
		return "unknown"
	}
}

// ParseWeekRule parses a rule name as produced by WeekRule.String.
func ParseWeekRule(s string) (WeekRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first_day":
		return FirstDay, nil
	case "first_four_day_week", "iso":
		return FirstFourDayWeek, nil
	case "first_full_week":
		return FirstFullWeek, nil
	}
	return 0, fmt.Errorf("unknown week rule %q", s)
}

// ValidWeekRules returns the accepted week rule names.
func ValidWeekRules() []string {
	return []string{"first_day", "first_four_day_week", "first_full_week"}
}

// System is the calendar system views are computed with.
type System struct {
	Rule           WeekRule
	FirstDayOfWeek time.Weekday
}

// ISO is the ISO-8601 calendar system: Monday first, four-day first week.
var ISO = System{Rule: FirstFourDayWeek, FirstDayOfWeek: time.Monday}

// StartOfWeek returns the first day of the week containing d.
func (s System) StartOfWeek(d Date) Date {
	back := (int(d.Weekday()) - int(s.FirstDayOfWeek) + 7) % 7
	return d.AddDays(-back)
}

// WeekOfYear returns the week number of d under the system's rule.
func (s System) WeekOfYear(d Date) int {
	return WeekOfYear(d, s.Rule, s.FirstDayOfWeek)
}

// Weekdays returns the seven weekdays in column order.
func (s System) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(s.FirstDayOfWeek) + i) % 7)
	}
	return days
}

// WeekOfYear returns the week number of d for the given rule and first day
// of week. Dates before week 1 belong to the last week of the previous year;
// dates after the last week of a year may belong to week 1 of the next.
func WeekOfYear(d Date, rule WeekRule, first time.Weekday) int {
	sys := System{Rule: rule, FirstDayOfWeek: first}
	start := sys.StartOfWeek(d)

	w1 := firstWeekStart(d.Year, sys)
	if start.Before(w1) {
		w1 = firstWeekStart(d.Year-1, sys)
	} else if next := firstWeekStart(d.Year+1, sys); !start.Before(next) {
		w1 = next
	}
	return w1.DaysUntil(start)/7 + 1
}

// firstWeekStart returns the first day of week 1 of year.
func firstWeekStart(year int, sys System) Date {
	jan1 := NewDate(year, time.January, 1)
	start := sys.StartOfWeek(jan1)
	daysInYear := 7 - start.DaysUntil(jan1)

	switch sys.Rule {
	case FirstFourDayWeek:
		if daysInYear < 4 {
			return start.AddDays(7)
		}
	case FirstFullWeek:
		if daysInYear < 7 {
			return start.AddDays(7)
		}
	}
	return start
}
