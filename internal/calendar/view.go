package calendar

import (
	"iter"
	"strconv"
	"time"
)

// DaysPerWeek is the number of dates in a WeekView.
const DaysPerWeek = 7

// WeekView is seven contiguous dates plus their week number. It is immutable.
type WeekView struct {
	dates  [DaysPerWeek]Date
	number int
}

// NewWeekView returns the week starting at first.
func NewWeekView(first Date, sys System) WeekView {
	var w WeekView
	for i := range w.dates {
		w.dates[i] = first.AddDays(i)
	}
	w.number = sys.WeekOfYear(first)
	return w
}

// Dates returns the seven dates of the week in column order.
func (w WeekView) Dates() [DaysPerWeek]Date { return w.dates }

// Date returns the date in column i.
func (w WeekView) Date(i int) Date { return w.dates[i] }

// First returns the first date of the week.
func (w WeekView) First() Date { return w.dates[0] }

// Last returns the last date of the week.
func (w WeekView) Last() Date { return w.dates[DaysPerWeek-1] }

// Number returns the week-of-year number.
func (w WeekView) Number() int { return w.number }

// Contains reports whether d lies within the week.
func (w WeekView) Contains(d Date) bool {
	return !d.Before(w.dates[0]) && !d.After(w.dates[DaysPerWeek-1])
}

// MonthView is the month anchored at its first day, padded with the dates of
// the neighbouring months so that it covers whole weeks. It is immutable;
// moving the window means building a new view with Next or Previous.
type MonthView struct {
	anchor Date
	sys    System
	first  Date
	last   Date
	dates  []Date
}

// NewMonthView returns the view of the month containing day.
func NewMonthView(day Date, sys System) *MonthView {
	anchor := day.FirstOfMonth()

	first := anchor
	for first.Weekday() != sys.FirstDayOfWeek {
		first = first.AddDays(-1)
	}

	last := anchor.LastOfMonth()
	for last.AddDays(1).Weekday() != sys.FirstDayOfWeek {
		last = last.AddDays(1)
	}

	n := first.DaysUntil(last) + 1
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = first.AddDays(i)
	}

	return &MonthView{
		anchor: anchor,
		sys:    sys,
		first:  first,
		last:   last,
		dates:  dates,
	}
}

// Anchor returns the first day of the view's month.
func (v *MonthView) Anchor() Date { return v.anchor }

// System returns the calendar system the view was built with.
func (v *MonthView) System() System { return v.sys }

// FirstDate returns the first padded date of the view.
func (v *MonthView) FirstDate() Date { return v.first }

// LastDate returns the last padded date of the view.
func (v *MonthView) LastDate() Date { return v.last }

// Dates returns a copy of every date in the view, in order.
func (v *MonthView) Dates() []Date {
	out := make([]Date, len(v.dates))
	copy(out, v.dates)
	return out
}

// WeekCount returns the number of whole weeks covered by the view.
func (v *MonthView) WeekCount() int {
	return (len(v.dates) + DaysPerWeek - 1) / DaysPerWeek
}

// IsOverflowing reports whether the view's last week ends in the following
// month. That week is the same week as the next view's first week.
func (v *MonthView) IsOverflowing() bool {
	return !v.last.SameMonth(v.anchor)
}

// EffectiveWeekCount returns the number of weeks the view contributes to a
// continuous week sequence: its last week is left to the next view when the
// view overflows.
func (v *MonthView) EffectiveWeekCount() int {
	if v.IsOverflowing() {
		return v.WeekCount() - 1
	}
	return v.WeekCount()
}

// Contains reports whether d lies in the padded range of the view.
func (v *MonthView) Contains(d Date) bool {
	return !d.Before(v.first) && !d.After(v.last)
}

// InMonth reports whether d belongs to the anchor month (not padding).
func (v *MonthView) InMonth(d Date) bool {
	return d.SameMonth(v.anchor)
}

// Week returns the i-th week of the view. It panics if i is out of range.
func (v *MonthView) Week(i int) WeekView {
	if i < 0 || i >= v.WeekCount() {
		panic("calendar: week index out of range")
	}
	return NewWeekView(v.dates[i*DaysPerWeek], v.sys)
}

// WeekIndexOf returns the index of the week containing d, or -1.
func (v *MonthView) WeekIndexOf(d Date) int {
	if !v.Contains(d) {
		return -1
	}
	return v.first.DaysUntil(d) / DaysPerWeek
}

// Weeks returns the weeks of the view as a restartable sequence of
// (index, week) pairs. Each range over the sequence starts from the first week.
func (v *MonthView) Weeks() iter.Seq2[int, WeekView] {
	return func(yield func(int, WeekView) bool) {
		for i := 0; i < v.WeekCount(); i++ {
			if !yield(i, v.Week(i)) {
				return
			}
		}
	}
}

// Next returns a new view one month later.
func (v *MonthView) Next() *MonthView {
	return NewMonthView(v.anchor.AddMonths(1), v.sys)
}

// Previous returns a new view one month earlier.
func (v *MonthView) Previous() *MonthView {
	return NewMonthView(v.anchor.AddMonths(-1), v.sys)
}

// Title returns the month and year of the anchor, e.g. "February 2024".
func (v *MonthView) Title() string {
	return v.anchor.Month.String() + " " + strconv.Itoa(v.anchor.Year)
}

// Weekdays returns the column weekdays of the view.
func (v *MonthView) Weekdays() []time.Weekday {
	return v.sys.Weekdays()
}
