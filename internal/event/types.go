package event

import (
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "layout.view_changed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeDatesRealized              = "layout.dates_realized"
	TypeCurrentViewChanged         = "layout.view_changed"
	TypeAutoGeneratingDate         = "layout.auto_generating_date"
	TypeAutoGeneratingColumnHeader = "layout.auto_generating_column_header"
	TypeAutoGeneratingItem         = "layout.auto_generating_item"
	TypeDayChanged                 = "calendar.day_changed"
	TypeAgendaReloaded             = "agenda.reloaded"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Realization Events
// -----------------------------------------------------------------------------

// DatesRealizedEvent is emitted once per measure pass after every visible date
// has a container.
type DatesRealizedEvent struct {
	baseEvent
	View  calendar.Date   // Anchor of the current month view
	Dates []calendar.Date // Realized dates in grid order
	Rows  int             // Number of week rows realized
}

// NewDatesRealizedEvent creates a DatesRealizedEvent.
func NewDatesRealizedEvent(view calendar.Date, dates []calendar.Date, rows int) DatesRealizedEvent {
	return DatesRealizedEvent{
		baseEvent: newBaseEvent(TypeDatesRealized),
		View:      view,
		Dates:     dates,
		Rows:      rows,
	}
}

// CurrentViewChangedEvent is emitted when the current month view is replaced.
type CurrentViewChangedEvent struct {
	baseEvent
	Old       calendar.Date // Anchor of the replaced view
	New       calendar.Date // Anchor of the new current view
	Direction string        // "top", "bottom" or "undefined"
}

// NewCurrentViewChangedEvent creates a CurrentViewChangedEvent.
func NewCurrentViewChangedEvent(old, cur calendar.Date, direction string) CurrentViewChangedEvent {
	return CurrentViewChangedEvent{
		baseEvent: newBaseEvent(TypeCurrentViewChanged),
		Old:       old,
		New:       cur,
		Direction: direction,
	}
}

// Placement is the grid cell a container is about to be placed in.
// Handlers of auto-generating events may change it or set Cancel to skip
// placement for this pass.
type Placement struct {
	Row        int
	Column     int
	ColumnSpan int
	Cancel     bool
}

// AutoGeneratingDateEvent is published, as a pointer, before a date container
// is placed in the grid.
type AutoGeneratingDateEvent struct {
	baseEvent
	Placement
	Container int
	Date      calendar.Date
}

// NewAutoGeneratingDateEvent creates an AutoGeneratingDateEvent.
func NewAutoGeneratingDateEvent(container int, date calendar.Date, row, column int) *AutoGeneratingDateEvent {
	return &AutoGeneratingDateEvent{
		baseEvent: newBaseEvent(TypeAutoGeneratingDate),
		Placement: Placement{Row: row, Column: column, ColumnSpan: 1},
		Container: container,
		Date:      date,
	}
}

// AutoGeneratingColumnHeaderEvent is published, as a pointer, before a column
// header container is placed. Filler headers sit above the week-number gutter.
type AutoGeneratingColumnHeaderEvent struct {
	baseEvent
	Placement
	Container int
	Weekday   time.Weekday
	Filler    bool
}

// NewAutoGeneratingColumnHeaderEvent creates an AutoGeneratingColumnHeaderEvent.
func NewAutoGeneratingColumnHeaderEvent(container int, weekday time.Weekday, filler bool, column int) *AutoGeneratingColumnHeaderEvent {
	return &AutoGeneratingColumnHeaderEvent{
		baseEvent: newBaseEvent(TypeAutoGeneratingColumnHeader),
		Placement: Placement{Row: 0, Column: column, ColumnSpan: 1},
		Container: container,
		Weekday:   weekday,
		Filler:    filler,
	}
}

// AutoGeneratingItemEvent is published, as a pointer, before an agenda item
// container is placed under its date.
type AutoGeneratingItemEvent struct {
	baseEvent
	Placement
	Container int
	Date      calendar.Date
	Data      any
}

// NewAutoGeneratingItemEvent creates an AutoGeneratingItemEvent.
func NewAutoGeneratingItemEvent(container int, date calendar.Date, data any, row, column, span int) *AutoGeneratingItemEvent {
	return &AutoGeneratingItemEvent{
		baseEvent: newBaseEvent(TypeAutoGeneratingItem),
		Placement: Placement{Row: row, Column: column, ColumnSpan: span},
		Container: container,
		Date:      date,
		Data:      data,
	}
}

// -----------------------------------------------------------------------------
// Calendar and Agenda Events
// -----------------------------------------------------------------------------

// DayChangedEvent is emitted when the local date rolls over at midnight.
type DayChangedEvent struct {
	baseEvent
	Today calendar.Date
}

// NewDayChangedEvent creates a DayChangedEvent.
func NewDayChangedEvent(today calendar.Date) DayChangedEvent {
	return DayChangedEvent{
		baseEvent: newBaseEvent(TypeDayChanged),
		Today:     today,
	}
}

// AgendaReloadedEvent is emitted after agenda sources were (re)loaded.
type AgendaReloadedEvent struct {
	baseEvent
	Paths   []string // Source files that were read
	Entries int      // Number of entries after filtering
	Err     error    // First load error, if any
}

// NewAgendaReloadedEvent creates an AgendaReloadedEvent.
func NewAgendaReloadedEvent(paths []string, entries int, err error) AgendaReloadedEvent {
	return AgendaReloadedEvent{
		baseEvent: newBaseEvent(TypeAgendaReloaded),
		Paths:     paths,
		Entries:   entries,
		Err:       err,
	}
}
