package layout

import (
	"slices"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/event"
)

// Measure runs a realization pass: it recycles dates that left the window,
// realizes every date of the visible weeks, the headers and the agenda items,
// and groups items into hosts. Measure before Initialize is a fatal error.
func (p *Panel) Measure() error {
	if p.owner == nil {
		return errors.NewLayoutError("measure", errors.ErrNotInitialized)
	}

	weeks := p.window()
	want := make(map[calendar.Date]struct{}, len(weeks)*Columns)
	for _, w := range weeks {
		for _, d := range w.Dates() {
			want[d] = struct{}{}
		}
	}

	recycled := p.recycleDates(want)
	p.children = p.children[:0]
	p.tables.clearIndex()

	today := calendar.DateOf(p.cfg.Now())
	gutter := p.gutterColumns()
	dates := make([]calendar.Date, 0, len(weeks)*Columns)
	created := 0

	for r, w := range weeks {
		p.tables.weeks[r] = w.Number()
		for col, d := range w.Dates() {
			c, isNew := p.realizeDate(d)
			if isNew {
				created++
			}
			item, _ := p.tables.DayItemOf(c)
			p.refreshDayItem(item, today)
			p.owner.PrepareDate(c, item)
			p.tables.grid[c] = r*Columns + col
			dates = append(dates, d)

			ch := child{container: c, kind: KindDate, date: d, row: r + 1, column: col + gutter, span: 1}
			if p.listening(event.TypeAutoGeneratingDate) {
				ev := event.NewAutoGeneratingDateEvent(int(c), d, ch.row, ch.column)
				p.publish(ev)
				if ev.Cancel {
					continue
				}
				ch.row, ch.column, ch.span = ev.Row, ev.Column, max(ev.ColumnSpan, 1)
			}
			p.children = append(p.children, ch)
		}
	}
	p.windowFirst = dates[0]
	p.windowLast = dates[len(dates)-1]

	p.publish(event.NewDatesRealizedEvent(p.current.Anchor(), dates, len(weeks)))

	p.realizeHeaders(len(weeks))

	if err := p.realizeItems(); err != nil {
		return err
	}

	p.dirty = false
	p.measured = true
	p.logger.Debug("measure pass",
		"view", p.current.Anchor().MonthKey(),
		"week_offset", p.weekOffset,
		"direction", p.direction.String(),
		"realized", p.tables.RealizedCount(),
		"recycled", recycled,
		"created", created,
		"pooled", p.tables.PooledCount(),
		"items", len(p.visible),
		"hosts", len(p.arrange.hosts),
	)
	return nil
}

// window returns the weeks to realize: the current view from the week
// offset, continued by the following views. Only the effective weeks of a
// view are taken since an overflowing view's last week is the next view's
// first week.
func (p *Panel) window() []calendar.WeekView {
	p.weekOffset = clamp(p.weekOffset, 0, p.current.EffectiveWeekCount()-1)

	weeks := make([]calendar.WeekView, 0, p.rows)
	view := p.current
	i := p.weekOffset
	for len(weeks) < p.rows {
		if i >= view.EffectiveWeekCount() {
			if view == p.current {
				view = p.next
			} else {
				view = view.Next()
			}
			i = 0
			continue
		}
		weeks = append(weeks, view.Week(i))
		i++
	}
	return weeks
}

// recycleDates returns realized dates missing from keep to the pool. Dates
// are visited in scroll order: tail first after scrolling to the top, head
// first otherwise. A nil keep recycles everything.
func (p *Panel) recycleDates(keep map[calendar.Date]struct{}) int {
	realized := p.tables.realizedDates()
	if p.direction == Top {
		slices.Reverse(realized)
	}

	n := 0
	for _, d := range realized {
		if _, ok := keep[d]; ok {
			continue
		}
		c, ok := p.tables.recycle(d)
		if !ok {
			continue
		}
		if p.owner != nil {
			p.owner.ClearContainer(c)
		}
		n++
	}
	return n
}

// realizeDate returns the container for d, reusing a mapped or pooled one
// before asking the owner. It reports whether the owner created it.
func (p *Panel) realizeDate(d calendar.Date) (Container, bool) {
	if c, ok := p.tables.ContainerFor(d); ok {
		return c, false
	}

	created := false
	c, ok := p.tables.take()
	if !ok {
		c = p.owner.ContainerForDate()
		p.tables.created++
		p.kinds[c] = KindDate
		created = true
	}
	p.tables.bind(c, calendar.NewDayItem(d, p.sys))
	return c, created
}

func (p *Panel) refreshDayItem(item *calendar.DayItem, today calendar.Date) {
	d := item.Date
	item.HolidayName, item.IsHoliday = p.cfg.Holidays.Holiday(d)
	item.IsToday = d == today
	item.IsSelected = !p.selected.IsZero() && d == p.selected
	item.IsOtherMonth = !p.current.InMonth(d)
	item.Annotation = p.annotations[d]
}

func (p *Panel) gutterColumns() int {
	if p.cfg.ShowWeekNumbers {
		return 1
	}
	return 0
}

// realizeHeaders realizes week-number gutter containers for each row and one
// column header per weekday, plus a filler over the gutter. Header containers
// are created once and kept for the life of the panel.
func (p *Panel) realizeHeaders(rows int) {
	gutter := p.gutterColumns()

	if gutter == 1 {
		for r := 0; r < rows; r++ {
			for len(p.weekHeaders) <= r {
				c := p.owner.ContainerForWeekHeader()
				p.kinds[c] = KindWeekHeader
				p.weekHeaders = append(p.weekHeaders, c)
			}
			week, ok := p.tables.WeekNumberOfRow(r)
			if !ok {
				continue
			}
			c := p.weekHeaders[r]
			p.owner.PrepareWeekHeader(c, week)
			p.children = append(p.children, child{container: c, kind: KindWeekHeader, row: r + 1, column: 0, span: 1})
		}
	}

	count := Columns + gutter
	for len(p.columnHeaders) < count {
		c := p.owner.ContainerForColumnHeader()
		p.kinds[c] = KindColumnHeader
		p.columnHeaders = append(p.columnHeaders, c)
	}

	days := p.sys.Weekdays()
	for i := 0; i < count; i++ {
		c := p.columnHeaders[i]
		filler := gutter == 1 && i == 0
		var day time.Weekday
		if !filler {
			day = days[i-gutter]
		}
		p.owner.PrepareColumnHeader(c, day, filler)

		ch := child{container: c, kind: KindColumnHeader, row: 0, column: i, span: 1}
		if p.listening(event.TypeAutoGeneratingColumnHeader) {
			ev := event.NewAutoGeneratingColumnHeaderEvent(int(c), day, filler, i)
			p.publish(ev)
			if ev.Cancel {
				continue
			}
			ch.row, ch.column, ch.span = ev.Row, ev.Column, max(ev.ColumnSpan, 1)
		}
		p.children = append(p.children, ch)
	}
}

// realizeItems asks the generator for every item, recycles the ones outside
// the realized window straight back and groups the rest into hosts.
func (p *Panel) realizeItems() error {
	for _, c := range p.visible {
		if p.gen != nil {
			p.gen.RecycleItem(c)
		}
		p.forgetItem(c)
	}
	p.visible = p.visible[:0]
	clear(p.buckets)
	p.arrange.reset()

	if p.gen == nil {
		return nil
	}

	anchor := p.current.Anchor()
	for i := 0; i < p.gen.ItemCount(); i++ {
		c, data, err := p.gen.RealizeItem(i, p)
		if err != nil {
			if c != NoContainer {
				p.gen.RecycleItem(c)
				p.forgetItem(c)
			}
			return errors.NewLayoutError("measure", err).WithContainer(int(c)).WithMessage("item realization failed")
		}
		p.kinds[c] = KindItem
		p.itemData[c] = data
		if _, ok := p.tags[c]; !ok {
			d := calendar.NewDate(anchor.Year, anchor.Month, p.DayIndex(c))
			p.tags[c] = dayTag{date: d, at: d.Time(time.Local)}
		}

		start, span, ok := p.clipToWindow(p.tags[c].date, p.Span(c))
		if !ok {
			p.gen.RecycleItem(c)
			p.forgetItem(c)
			continue
		}

		if p.listening(event.TypeAutoGeneratingItem) {
			row, col := p.cellOf(start)
			ev := event.NewAutoGeneratingItemEvent(int(c), start, data, row, col, span)
			p.publish(ev)
			if ev.Cancel {
				p.gen.RecycleItem(c)
				p.forgetItem(c)
				continue
			}
		}

		p.visible = append(p.visible, c)
		p.buckets[start] = append(p.buckets[start], c)
	}

	for _, d := range p.bucketDates() {
		for _, c := range p.buckets[d] {
			_, span, _ := p.clipToWindow(p.tags[c].date, p.Span(c))
			p.arrange.add(c, d, span)
		}
	}
	p.arrange.pack()
	return nil
}

// clipToWindow clips the range [start, start+span) to the realized window.
func (p *Panel) clipToWindow(start calendar.Date, span int) (calendar.Date, int, bool) {
	end := start.AddDays(max(span, 1) - 1)
	if end.Before(p.windowFirst) || start.After(p.windowLast) {
		return calendar.Date{}, 0, false
	}
	if start.Before(p.windowFirst) {
		start = p.windowFirst
	}
	if end.After(p.windowLast) {
		end = p.windowLast
	}
	return start, start.DaysUntil(end) + 1, true
}

// cellOf returns the display grid cell of a realized date.
func (p *Panel) cellOf(d calendar.Date) (int, int) {
	c, ok := p.tables.ContainerFor(d)
	if !ok {
		return -1, -1
	}
	idx, ok := p.tables.GridIndexOf(c)
	if !ok {
		return -1, -1
	}
	return idx/Columns + 1, idx%Columns + p.gutterColumns()
}

func (p *Panel) bucketDates() []calendar.Date {
	out := make([]calendar.Date, 0, len(p.buckets))
	for d := range p.buckets {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b calendar.Date) int { return a.Compare(b) })
	return out
}

func (p *Panel) forgetItem(c Container) {
	delete(p.tags, c)
	delete(p.spans, c)
	delete(p.itemData, c)
	delete(p.kinds, c)
	p.arrange.remove(c)
}
