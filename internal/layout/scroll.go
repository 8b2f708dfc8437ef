package layout

import (
	"math"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/event"
)

// VerticalOffset returns the last requested vertical offset in weeks.
func (p *Panel) VerticalOffset() float64 { return p.vOffset }

// SetVerticalOffset scrolls to v, measured in weeks. The change is applied as
// a whole number of weeks (rounded up). Moving before the current view loads
// the previous month, moving past its effective weeks loads the next one.
// A single call moves at most one view.
func (p *Panel) SetVerticalOffset(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	delta := int(math.Ceil(v - p.vOffset))
	p.vOffset = v
	if delta == 0 {
		return nil
	}

	candidate := p.weekOffset + delta
	switch {
	case candidate < 0:
		p.direction = Top
		p.loadPrevious()
		eff := p.current.EffectiveWeekCount()
		p.weekOffset = clamp(eff+candidate, 0, eff-1)
	case candidate >= p.current.EffectiveWeekCount():
		p.direction = Bottom
		p.loadNext()
		p.weekOffset = 0
	default:
		p.weekOffset = candidate
		p.dirty = true
	}
	return nil
}

// LineUp scrolls one week back.
func (p *Panel) LineUp() error { return p.scrollBy(-1) }

// LineDown scrolls one week forward.
func (p *Panel) LineDown() error { return p.scrollBy(1) }

// PageUp scrolls back by the current view's week count.
func (p *Panel) PageUp() error { return p.scrollBy(-p.current.WeekCount()) }

// PageDown scrolls forward by the current view's week count.
func (p *Panel) PageDown() error { return p.scrollBy(p.current.WeekCount()) }

// MouseWheelUp scrolls back by the configured wheel lines.
func (p *Panel) MouseWheelUp() error { return p.scrollBy(-p.cfg.WheelLines) }

// MouseWheelDown scrolls forward by the configured wheel lines.
func (p *Panel) MouseWheelDown() error { return p.scrollBy(p.cfg.WheelLines) }

func (p *Panel) scrollBy(weeks int) error {
	return p.SetVerticalOffset(p.vOffset + float64(weeks))
}

// ScrollToDate makes d's month the current view with d's week on the top row.
// A date in an overflowing view's last week is shown as the first week of
// the following view.
func (p *Panel) ScrollToDate(d calendar.Date) error {
	old := p.current.Anchor()
	view := calendar.NewMonthView(d, p.sys)
	idx := view.WeekIndexOf(d)
	if idx >= view.EffectiveWeekCount() {
		view = view.Next()
		idx = 0
	}

	if view.Anchor() != old {
		if view.Anchor().Before(old) {
			p.direction = Top
		} else {
			p.direction = Bottom
		}
		p.flush()
		p.current = view
		p.next = view.Next()
		p.publish(event.NewCurrentViewChangedEvent(old, view.Anchor(), p.direction.String()))
	}
	p.weekOffset = idx
	p.dirty = true
	return nil
}

// SetHorizontalOffset is not supported.
func (p *Panel) SetHorizontalOffset(float64) error { return unsupported("set_horizontal_offset") }

// LineLeft is not supported.
func (p *Panel) LineLeft() error { return unsupported("line_left") }

// LineRight is not supported.
func (p *Panel) LineRight() error { return unsupported("line_right") }

// PageLeft is not supported.
func (p *Panel) PageLeft() error { return unsupported("page_left") }

// PageRight is not supported.
func (p *Panel) PageRight() error { return unsupported("page_right") }

// MouseWheelLeft is not supported.
func (p *Panel) MouseWheelLeft() error { return unsupported("mouse_wheel_left") }

// MouseWheelRight is not supported.
func (p *Panel) MouseWheelRight() error { return unsupported("mouse_wheel_right") }

func unsupported(op string) error {
	return errors.NewLayoutError(op, errors.ErrUnsupportedScroll)
}

func (p *Panel) loadNext() {
	old := p.current.Anchor()
	p.flush()
	p.current = p.next
	p.next = p.next.Next()
	p.publish(event.NewCurrentViewChangedEvent(old, p.current.Anchor(), p.direction.String()))
}

func (p *Panel) loadPrevious() {
	old := p.current.Anchor()
	p.flush()
	p.next = p.current
	p.current = p.current.Previous()
	p.publish(event.NewCurrentViewChangedEvent(old, p.current.Anchor(), p.direction.String()))
}

// flush recycles every realized date container and marks the panel dirty.
func (p *Panel) flush() {
	n := p.recycleDates(nil)
	p.dirty = true
	p.logger.Debug("view flushed", "recycled", n, "direction", p.direction.String())
}
