package tui

import (
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
)

// cell is the state behind one container handle. Date cells point at the
// DayItem owned by the layout tables; the renderer only reads it.
type cell struct {
	kind    layout.Kind
	day     *calendar.DayItem
	week    int
	weekday time.Weekday
	filler  bool
}

// arena hands out container handles to the layout engine and the agenda
// store and remembers what was bound into each one. It implements
// layout.Owner and agenda.Containers.
type arena struct {
	next    layout.Container
	cells   map[layout.Container]*cell
	created map[layout.Kind]int
}

func newArena() *arena {
	return &arena{
		cells:   make(map[layout.Container]*cell),
		created: make(map[layout.Kind]int),
	}
}

func (a *arena) alloc(kind layout.Kind) layout.Container {
	c := a.next
	a.next++
	a.cells[c] = &cell{kind: kind}
	a.created[kind]++
	return c
}

func (a *arena) ContainerForDate() layout.Container         { return a.alloc(layout.KindDate) }
func (a *arena) ContainerForWeekHeader() layout.Container   { return a.alloc(layout.KindWeekHeader) }
func (a *arena) ContainerForColumnHeader() layout.Container { return a.alloc(layout.KindColumnHeader) }
func (a *arena) ContainerForItem() layout.Container         { return a.alloc(layout.KindItem) }

func (a *arena) PrepareDate(c layout.Container, item *calendar.DayItem) {
	if cl, ok := a.cells[c]; ok {
		cl.day = item
	}
}

func (a *arena) PrepareWeekHeader(c layout.Container, week int) {
	if cl, ok := a.cells[c]; ok {
		cl.week = week
	}
}

func (a *arena) PrepareColumnHeader(c layout.Container, day time.Weekday, filler bool) {
	if cl, ok := a.cells[c]; ok {
		cl.weekday = day
		cl.filler = filler
	}
}

// ClearContainer drops everything bound into c but keeps its kind; the
// handle is reused from the recycle pool later.
func (a *arena) ClearContainer(c layout.Container) {
	if cl, ok := a.cells[c]; ok {
		*cl = cell{kind: cl.kind}
	}
}

// DesiredHeight reserves one line for the day number of a date cell.
func (a *arena) DesiredHeight(layout.Container) int { return 1 }

func (a *arena) cell(c layout.Container) (*cell, bool) {
	cl, ok := a.cells[c]
	return cl, ok
}

// createdCount returns how many handles of kind were ever allocated.
func (a *arena) createdCount(kind layout.Kind) int { return a.created[kind] }
