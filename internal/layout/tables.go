package layout

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
)

// Tables are the lookup structures correlating date containers with dates.
// A date container is always in exactly one of the realized map or the
// recycle pool. Only the engine mutates tables; collaborators use the
// read accessors.
type Tables struct {
	dates   map[calendar.Date]Container
	items   map[Container]*calendar.DayItem
	grid    map[Container]int
	weeks   map[int]int // row -> week number
	pool    *Pool
	created int
}

// NewTables returns empty tables.
func NewTables() *Tables {
	return &Tables{
		dates: make(map[calendar.Date]Container),
		items: make(map[Container]*calendar.DayItem),
		grid:  make(map[Container]int),
		weeks: make(map[int]int),
		pool:  NewPool(),
	}
}

// bind records that c now shows item.
func (t *Tables) bind(c Container, item *calendar.DayItem) {
	t.dates[item.Date] = c
	t.items[c] = item
}

// take pops a recycled container.
func (t *Tables) take() (Container, bool) {
	return t.pool.Pop()
}

// recycle unbinds d and pushes its container to the pool. It returns the
// container and false when d was not realized.
func (t *Tables) recycle(d calendar.Date) (Container, bool) {
	c, ok := t.dates[d]
	if !ok {
		return NoContainer, false
	}
	delete(t.dates, d)
	delete(t.items, c)
	delete(t.grid, c)
	t.pool.Push(c)
	return c, true
}

// clearIndex drops grid indexes and week numbers ahead of a new pass.
func (t *Tables) clearIndex() {
	clear(t.grid)
	clear(t.weeks)
}

// realizedDates returns the realized dates in ascending order.
func (t *Tables) realizedDates() []calendar.Date {
	out := make([]calendar.Date, 0, len(t.dates))
	for d := range t.dates {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b calendar.Date) int { return a.Compare(b) })
	return out
}

// ContainerFor returns the container realized for d.
func (t *Tables) ContainerFor(d calendar.Date) (Container, bool) {
	c, ok := t.dates[d]
	return c, ok
}

// DateOf returns the date shown by container c.
func (t *Tables) DateOf(c Container) (calendar.Date, bool) {
	item, ok := t.items[c]
	if !ok {
		return calendar.Date{}, false
	}
	return item.Date, true
}

// DayItemOf returns the data item bound to c.
func (t *Tables) DayItemOf(c Container) (*calendar.DayItem, bool) {
	item, ok := t.items[c]
	return item, ok
}

// GridIndexOf returns row*columns+column for c.
func (t *Tables) GridIndexOf(c Container) (int, bool) {
	idx, ok := t.grid[c]
	return idx, ok
}

// WeekNumberOfRow returns the week number realized in row r.
func (t *Tables) WeekNumberOfRow(r int) (int, bool) {
	n, ok := t.weeks[r]
	return n, ok
}

// IsPooled reports whether c is waiting in the recycle pool.
func (t *Tables) IsPooled(c Container) bool { return t.pool.Contains(c) }

// RealizedCount returns the number of realized dates.
func (t *Tables) RealizedCount() int { return len(t.dates) }

// PooledCount returns the number of recycled date containers.
func (t *Tables) PooledCount() int { return t.pool.Len() }

// CreatedCount returns the number of date containers ever requested from the owner.
func (t *Tables) CreatedCount() int { return t.created }

// Check verifies that every date container is in exactly one of the realized
// map or the pool and that both directions of the date map agree.
func (t *Tables) Check() error {
	var problems []error
	seen := make(map[Container]calendar.Date, len(t.dates))

	for d, c := range t.dates {
		if other, dup := seen[c]; dup {
			problems = append(problems, fmt.Errorf("container %d realized for %v and %v", c, other, d))
		}
		seen[c] = d
		if t.pool.Contains(c) {
			problems = append(problems, fmt.Errorf("container %d realized for %v is also pooled", c, d))
		}
		item, ok := t.items[c]
		if !ok {
			problems = append(problems, fmt.Errorf("container %d realized for %v has no day item", c, d))
		} else if item.Date != d {
			problems = append(problems, fmt.Errorf("container %d realized for %v is bound to %v", c, d, item.Date))
		}
	}
	if len(t.items) != len(t.dates) {
		problems = append(problems, fmt.Errorf("%d day items for %d realized dates", len(t.items), len(t.dates)))
	}
	if total := len(t.dates) + t.pool.Len(); total != t.created {
		problems = append(problems, fmt.Errorf("%d realized + %d pooled != %d created", len(t.dates), t.pool.Len(), t.created))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.NewLayoutError("check", errors.Join(append([]error{errors.ErrInvariantViolated}, problems...)...))
}
