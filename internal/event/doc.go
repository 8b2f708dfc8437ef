// Package event provides the synchronous pub-sub bus the layout engine uses
// to notify its owner, plus the notification types it publishes.
//
// The engine never calls back into the owner for notifications directly. It
// publishes on a [Bus], and the owner (the TUI, the headless month renderer,
// tests) subscribes to what it cares about.
//
// # Main Types
//
//   - [Event]: Interface that all events implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub dispatcher with panic-recovering delivery
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Realization:
//   - [DatesRealizedEvent]: once per measure pass, after all visible dates have containers
//   - [CurrentViewChangedEvent]: the current month view was replaced by scrolling
//
// Placement (published as pointers so handlers can edit them):
//   - [AutoGeneratingDateEvent]
//   - [AutoGeneratingColumnHeaderEvent]
//   - [AutoGeneratingItemEvent]
//
// Each embeds a [Placement]. A handler may move the container by changing
// Row, Column or ColumnSpan, or set Cancel to leave it out of this pass.
//
// Calendar and agenda:
//   - [DayChangedEvent]: local midnight passed
//   - [AgendaReloadedEvent]: agenda sources were read again
//
// # Basic Usage
//
//	bus := event.NewBus(event.WithLogger(logger))
//
//	bus.Subscribe(event.TypeAutoGeneratingDate, func(e event.Event) {
//	    ev := e.(*event.AutoGeneratingDateEvent)
//	    if ev.Date.Weekday() == time.Sunday {
//	        ev.Cancel = true
//	    }
//	})
//
//	bus.SubscribeAll(func(e event.Event) {
//	    logger.Debug("event", "type", e.EventType())
//	})
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - layout.dates_realized, layout.view_changed
//   - layout.auto_generating_date, layout.auto_generating_column_header, layout.auto_generating_item
//   - calendar.day_changed
//   - agenda.reloaded
package event
