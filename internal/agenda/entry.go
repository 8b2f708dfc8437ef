// Package agenda loads calendar entries from YAML files and feeds them to the
// layout engine as items.
//
// A source file looks like:
//
//	name: work
//	entries:
//	  - title: Sprint review
//	    start: 2024-02-09 14:00
//	    days: 2
//	  - title: Offsite
//	    start: 2024-02-19
//	    end: 2024-02-21
//
// A start without a time of day makes an all-day entry. Entries without an id
// get a random one.
package agenda

import (
	"strings"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
)

// Entry is one agenda item.
type Entry struct {
	ID       string
	Title    string
	Start    time.Time
	AllDay   bool
	Days     int
	Location string
	Notes    string
	Tags     []string
	// Source is the file the entry was read from.
	Source string
}

// Span returns the number of days the entry covers, at least one.
func (e Entry) Span() int { return max(e.Days, 1) }

// StartDate returns the first day of the entry.
func (e Entry) StartDate() calendar.Date { return calendar.DateOf(e.Start) }

// EndDate returns the last day of the entry.
func (e Entry) EndDate() calendar.Date { return e.StartDate().AddDays(e.Span() - 1) }

// Overlaps reports whether the entry covers any day in [from, to].
func (e Entry) Overlaps(from, to calendar.Date) bool {
	return !e.EndDate().Before(from) && !e.StartDate().After(to)
}

// Tag returns the date tag handed to the layout engine: a calendar.Date for
// all-day entries, the start time otherwise.
func (e Entry) Tag() any {
	if e.AllDay {
		return e.StartDate()
	}
	return e.Start
}

// Label returns the text shown in a calendar cell.
func (e Entry) Label() string {
	if e.AllDay {
		return e.Title
	}
	return e.Start.Format("15:04") + " " + e.Title
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// moveTo returns e moved to start with the given span. The time of day is kept.
func (e Entry) moveTo(start calendar.Date, span int) Entry {
	if e.AllDay {
		e.Start = start.Time(e.Start.Location())
	} else {
		e.Start = time.Date(start.Year, start.Month, start.Day,
			e.Start.Hour(), e.Start.Minute(), e.Start.Second(), 0, e.Start.Location())
	}
	e.Days = max(span, 1)
	return e
}

func compareEntries(a, b Entry) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if a.Span() != b.Span() {
		return b.Span() - a.Span()
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
