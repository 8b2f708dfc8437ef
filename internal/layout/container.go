package layout

import (
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
)

// Container is an opaque handle to a visual slot owned by the caller. The
// engine never looks inside a container; it only moves handles between its
// tables and the recycle pool.
type Container int

// NoContainer is returned by lookups that miss.
const NoContainer Container = -1

// Kind classifies what a container is used for.
type Kind int

const (
	KindDate Kind = iota
	KindWeekHeader
	KindColumnHeader
	KindItem
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindWeekHeader:
		return "week_header"
	case KindColumnHeader:
		return "column_header"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Direction is the direction of the last scroll that moved the window.
type Direction int

const (
	Undefined Direction = iota
	Top
	Bottom
)

// String returns the direction name used in events and logs.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "undefined"
	}
}

// Owner creates, binds and clears containers for the engine.
// Factory methods are only called when the recycle pool is empty.
type Owner interface {
	ContainerForDate() Container
	ContainerForWeekHeader() Container
	ContainerForColumnHeader() Container

	PrepareDate(c Container, item *calendar.DayItem)
	PrepareWeekHeader(c Container, week int)
	// PrepareColumnHeader binds a weekday header. Filler headers sit over
	// the week-number gutter and carry no weekday.
	PrepareColumnHeader(c Container, day time.Weekday, filler bool)

	// ClearContainer strips bound data before c goes back to the pool.
	ClearContainer(c Container)

	// DesiredHeight returns the height a date container needs for itself;
	// items are stacked below it.
	DesiredHeight(c Container) int
}

// Tagger attaches date tags and spans to item containers.
type Tagger interface {
	SetDay(c Container, tag any) error
	SetSpan(c Container, span int)
}

// ItemGenerator supplies the externally managed agenda items. The engine only
// reads from it and hands containers back; it does not own item lifecycle.
type ItemGenerator interface {
	// ItemCount returns the number of data items.
	ItemCount() int
	// RealizeItem returns a container bound to item i, tagged through t.
	RealizeItem(i int, t Tagger) (Container, any, error)
	// RecycleItem returns a container the engine will not show.
	RecycleItem(c Container)
}

// ItemMover is implemented by generators that want to persist items moved by
// Stretch or SetRange.
type ItemMover interface {
	MoveItem(data any, start calendar.Date, span int)
}
