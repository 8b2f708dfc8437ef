package calendar

import "time"

// DayItem is the data bound into a realized date container. The layout
// engine creates one lazily the first time its date enters the realization
// window and refreshes its flags on every pass.
type DayItem struct {
	Date         Date
	DayOfWeek    time.Weekday
	WeekOfYear   int
	IsHoliday    bool
	HolidayName  string
	IsToday      bool
	IsSelected   bool
	IsOtherMonth bool
	Annotation   string
}

// NewDayItem returns the item for d with its calendar fields filled in.
func NewDayItem(d Date, sys System) *DayItem {
	return &DayItem{
		Date:       d,
		DayOfWeek:  d.Weekday(),
		WeekOfYear: sys.WeekOfYear(d),
	}
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func (it *DayItem) IsWeekend() bool {
	return it.DayOfWeek == time.Saturday || it.DayOfWeek == time.Sunday
}

// HasAnnotation reports whether a non-empty annotation is set.
func (it *DayItem) HasAnnotation() bool {
	return it.Annotation != ""
}
