package tui

import (
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/testutil"
)

func TestArena_Prepare(t *testing.T) {
	a := newArena()

	d := a.ContainerForDate()
	w := a.ContainerForWeekHeader()
	h := a.ContainerForColumnHeader()
	i := a.ContainerForItem()
	if d == w || w == h || h == i {
		t.Fatalf("handles are not distinct: %d %d %d %d", d, w, h, i)
	}

	item := calendar.NewDayItem(testutil.Date(2024, time.February, 14), calendar.ISO)
	a.PrepareDate(d, item)
	a.PrepareWeekHeader(w, 7)
	a.PrepareColumnHeader(h, time.Wednesday, false)

	if cl, _ := a.cell(d); cl.day != item || cl.kind != layout.KindDate {
		t.Errorf("date cell = %+v", cl)
	}
	if cl, _ := a.cell(w); cl.week != 7 {
		t.Errorf("week cell = %+v", cl)
	}
	if cl, _ := a.cell(h); cl.weekday != time.Wednesday || cl.filler {
		t.Errorf("header cell = %+v", cl)
	}
	if cl, _ := a.cell(i); cl.kind != layout.KindItem {
		t.Errorf("item cell kind = %s", cl.kind)
	}

	a.ClearContainer(d)
	if cl, _ := a.cell(d); cl.day != nil || cl.kind != layout.KindDate {
		t.Errorf("cleared cell = %+v, want kind kept and data dropped", cl)
	}

	// Unknown handles are ignored.
	a.PrepareDate(layout.Container(99), item)
	a.ClearContainer(layout.Container(99))
	if _, ok := a.cell(layout.Container(99)); ok {
		t.Error("preparing an unknown handle should not create a cell")
	}
	if a.DesiredHeight(d) != 1 {
		t.Errorf("DesiredHeight = %d, want 1", a.DesiredHeight(d))
	}
}

func TestArena_ContainersAreReused(t *testing.T) {
	g := newTestGrid(t)
	attachEntries(g, allDay("offsite", "Offsite", 19, 3))
	p := g.Panel()

	if _, err := g.Render(74, 16); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := g.arena.createdCount(layout.KindDate); got != 35 {
		t.Fatalf("created %d date containers, want 35", got)
	}

	for range 3 {
		if err := p.LineDown(); err != nil {
			t.Fatalf("LineDown failed: %v", err)
		}
		if _, err := g.Render(74, 16); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if got := g.arena.createdCount(layout.KindDate); got != 35 {
		t.Errorf("scrolling created %d date containers, want the 35 reused", got)
	}
	if got := g.arena.createdCount(layout.KindItem); got != 1 {
		t.Errorf("created %d item containers, want 1", got)
	}
	if err := p.Tables().Check(); err != nil {
		t.Errorf("table check failed: %v", err)
	}
}
