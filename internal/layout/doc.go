// Package layout implements the virtualizing month grid behind calgrid.
//
// A Panel shows a fixed number of week rows out of an endless sequence of
// months. It never owns rendering: an Owner creates opaque Container handles,
// fills them from calendar.DayItem values and reports how tall they want to
// be. The panel only decides which dates are realized, which containers are
// reused and where everything goes.
//
// # Passes
//
// Measure realizes the window: the current month view from the week offset,
// continued by the following views. Dates that scrolled out are recycled into
// a LIFO pool before new dates are realized, so the number of containers ever
// created stays bounded by the number of visible cells. Agenda items come
// from an ItemGenerator, are tagged with SetDay and SetSpan and grouped into
// hosts per anchor date and span. Arrange turns the result into Placements
// for a given Size.
//
// # Scrolling
//
// Vertical offsets are measured in weeks. Crossing the first week of the
// current view loads the previous month, crossing its effective week count
// loads the next one; every load flushes the realized dates and publishes a
// CurrentViewChangedEvent on the bus. Horizontal scroll primitives exist for
// completeness and always fail with errors.ErrUnsupportedScroll.
//
// # Events
//
// When a bus is configured the panel publishes DatesRealizedEvent after each
// measure pass and the AutoGenerating events for every date, column header
// and item it places. Handlers may move a container to another cell or
// cancel it; canceled containers stay realized but are not arranged.
package layout
