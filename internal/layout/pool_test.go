package layout

import (
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
)

func TestPool_LIFO(t *testing.T) {
	p := NewPool()
	for _, c := range []Container{1, 2, 3} {
		p.Push(c)
	}

	for _, want := range []Container{3, 2, 1} {
		got, ok := p.Pop()
		if !ok || got != want {
			t.Errorf("Pop() = %d, %v, want %d, true", got, ok, want)
		}
	}
	if c, ok := p.Pop(); ok || c != NoContainer {
		t.Errorf("Pop() on empty pool = %d, %v", c, ok)
	}
}

func TestPool_PushIsIdempotent(t *testing.T) {
	p := NewPool()
	if !p.Push(7) {
		t.Error("first Push should add the container")
	}
	if p.Push(7) {
		t.Error("second Push of the same container should be a no-op")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	if !p.Contains(7) {
		t.Error("Contains(7) = false")
	}

	p.Pop()
	if p.Contains(7) {
		t.Error("popped container should not be pooled")
	}
	if !p.Push(7) {
		t.Error("Push after Pop should add the container again")
	}
}

func TestTables_RecycleAndCheck(t *testing.T) {
	tb := NewTables()
	d1 := calendar.NewDate(2024, time.May, 1)
	d2 := d1.AddDays(1)

	tb.created = 2
	tb.bind(0, calendar.NewDayItem(d1, calendar.ISO))
	tb.bind(1, calendar.NewDayItem(d2, calendar.ISO))
	tb.grid[0] = 0
	tb.grid[1] = 1

	if err := tb.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}

	c, ok := tb.recycle(d1)
	if !ok || c != 0 {
		t.Fatalf("recycle(d1) = %d, %v", c, ok)
	}
	if _, ok := tb.recycle(d1); ok {
		t.Error("recycling an unrealized date should report false")
	}

	if tb.PooledCount() != 1 || tb.RealizedCount() != 1 {
		t.Errorf("pooled=%d realized=%d, want 1 and 1", tb.PooledCount(), tb.RealizedCount())
	}
	if _, ok := tb.GridIndexOf(0); ok {
		t.Error("recycled container kept its grid index")
	}
	if _, ok := tb.DateOf(0); ok {
		t.Error("recycled container still maps to a date")
	}
	if err := tb.Check(); err != nil {
		t.Errorf("Check() after recycle = %v", err)
	}
}

func TestTables_CheckDetectsViolations(t *testing.T) {
	d := calendar.NewDate(2024, time.May, 1)

	tests := []struct {
		name  string
		setup func(tb *Tables)
	}{
		{
			name: "realized and pooled",
			setup: func(tb *Tables) {
				tb.created = 1
				tb.bind(0, calendar.NewDayItem(d, calendar.ISO))
				tb.pool.Push(0)
			},
		},
		{
			name: "more containers than created",
			setup: func(tb *Tables) {
				tb.bind(0, calendar.NewDayItem(d, calendar.ISO))
			},
		},
		{
			name: "item bound to another date",
			setup: func(tb *Tables) {
				tb.created = 1
				tb.dates[d] = 0
				tb.items[0] = calendar.NewDayItem(d.AddDays(1), calendar.ISO)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTables()
			tt.setup(tb)
			err := tb.Check()
			if !errors.Is(err, errors.ErrInvariantViolated) {
				t.Fatalf("Check() = %v, want ErrInvariantViolated", err)
			}
			if !errors.IsFatal(err) {
				t.Error("invariant violations should be fatal")
			}
		})
	}
}
