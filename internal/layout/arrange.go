package layout

import (
	"slices"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
)

// HeaderHeight is the height of the column header row.
const HeaderHeight = 1

// Size is the area available to the grid, in cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a cell rectangle relative to the grid origin.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Placement positions one container.
type Placement struct {
	Container Container
	Kind      Kind
	Rect
	// Date is set for date and item placements.
	Date calendar.Date
	// ContinuesBefore and ContinuesAfter mark item segments cut at a row edge.
	ContinuesBefore bool
	ContinuesAfter  bool
}

// geometry converts display grid coordinates to cell rectangles.
type geometry struct {
	gutterCols  int
	gutterWidth int
	colWidth    int
	rowHeight   int
}

func (p *Panel) geometry(size Size) geometry {
	g := geometry{gutterCols: p.gutterColumns()}
	if g.gutterCols == 1 {
		g.gutterWidth = p.cfg.GutterWidth
	}
	g.colWidth = max((size.Width-g.gutterWidth)/Columns, 1)
	g.rowHeight = max((size.Height-HeaderHeight)/p.rows, 1)
	return g
}

func (g geometry) cell(row, col, span int) Rect {
	var r Rect
	switch {
	case col < g.gutterCols:
		r.X, r.Width = 0, g.gutterWidth
	default:
		r.X = g.gutterWidth + (col-g.gutterCols)*g.colWidth
		r.Width = max(span, 1) * g.colWidth
	}
	if row == 0 {
		r.Y, r.Height = 0, HeaderHeight
	} else {
		r.Y = HeaderHeight + (row-1)*g.rowHeight
		r.Height = g.rowHeight
	}
	return r
}

// Arrange positions every realized container within size. Items are stacked
// below the tallest desired height among the date containers of their row,
// one slot per item, starting at their host's lane; hosts crossing a row end
// are split into one segment per row. Items that do not fit are counted in
// Overflow. A pending measure pass runs first.
func (p *Panel) Arrange(size Size) ([]Placement, error) {
	if p.owner == nil {
		return nil, errors.NewLayoutError("arrange", errors.ErrNotInitialized)
	}
	if p.dirty || !p.measured {
		if err := p.Measure(); err != nil {
			return nil, err
		}
	}

	g := p.geometry(size)
	out := make([]Placement, 0, len(p.children)+len(p.visible))
	for _, ch := range p.children {
		out = append(out, Placement{
			Container: ch.container,
			Kind:      ch.kind,
			Rect:      g.cell(ch.row, ch.column, ch.span),
			Date:      ch.date,
		})
	}

	clear(p.overflow)
	hosts := slices.Clone(p.arrange.hosts)
	slices.SortFunc(hosts, func(x, y *Host) int {
		if c := x.Anchor.Compare(y.Anchor); c != 0 {
			return c
		}
		return x.Lane - y.Lane
	})
	baselines := p.rowBaselines()
	for _, h := range hosts {
		out = p.arrangeHost(out, g, baselines, h)
	}

	p.placement = out
	return out, nil
}

// rowBaselines returns, per week row, the tallest desired height of the
// row's date containers. Lane n must sit at the same offset on every date of
// a row, or hosts sharing a date could overlap.
func (p *Panel) rowBaselines() map[int]int {
	tops := make(map[int]int, p.rows)
	for c, idx := range p.tables.grid {
		row := idx / Columns
		tops[row] = max(tops[row], p.owner.DesiredHeight(c))
	}
	return tops
}

// arrangeHost appends the placements of h's items, one segment per row.
func (p *Panel) arrangeHost(out []Placement, g geometry, baselines map[int]int, h *Host) []Placement {
	start := h.Anchor
	remaining := h.Span
	for remaining > 0 {
		c, ok := p.tables.ContainerFor(start)
		if !ok {
			return out
		}
		idx, ok := p.tables.GridIndexOf(c)
		if !ok {
			return out
		}
		row, col := idx/Columns, idx%Columns
		length := min(Columns-col, remaining)
		end := start.AddDays(length - 1)

		cell := g.cell(row+1, col+g.gutterCols, length)
		top := cell.Y + baselines[row]
		slots := (cell.Y + cell.Height - top) / p.cfg.ItemHeight

		for i, item := range h.Items {
			slot := h.Lane + i
			if slot >= slots {
				for d := 0; d < length; d++ {
					p.overflow[start.AddDays(d)]++
				}
				continue
			}
			out = append(out, Placement{
				Container: item,
				Kind:      KindItem,
				Rect: Rect{
					X:      cell.X,
					Y:      top + slot*p.cfg.ItemHeight,
					Width:  cell.Width,
					Height: p.cfg.ItemHeight,
				},
				Date:            start,
				ContinuesBefore: start != h.Anchor,
				ContinuesAfter:  end != h.End(),
			})
		}

		start = end.AddDays(1)
		remaining -= length
	}
	return out
}

// Placements returns the result of the last Arrange.
func (p *Panel) Placements() []Placement {
	return append([]Placement(nil), p.placement...)
}

// Stretch drags item from its original date to newDate, giving it a span of
// days(newDate - original) + 1. A newDate before the original becomes the new
// start. The item joins a host with the same anchor and span when one exists;
// otherwise its host is resized when the item is alone in it, or the item is
// detached into a new host.
func (p *Panel) Stretch(item Container, newDate calendar.Date) error {
	tag, ok := p.tags[item]
	if !ok {
		return errors.NewLayoutError("stretch", errors.ErrNotAnItem).WithContainer(int(item))
	}
	start, end := tag.date, newDate
	if newDate.Before(start) {
		start, end = newDate, tag.date
	}
	return p.retag("stretch", item, start, start.DaysUntil(end)+1)
}

// SetRange retags item to cover start through end, following the same host
// rules as Stretch. Dates the item no longer covers stop listing it.
func (p *Panel) SetRange(item Container, start, end calendar.Date) error {
	if end.Before(start) {
		start, end = end, start
	}
	return p.retag("set_range", item, start, start.DaysUntil(end)+1)
}

func (p *Panel) retag(op string, item Container, start calendar.Date, span int) error {
	old, ok := p.arrange.hostOf(item)
	if !ok {
		return errors.NewLayoutError(op, errors.ErrNotAnItem).WithContainer(int(item))
	}
	oldAnchor, oldSpan := old.Anchor, old.Span

	at := p.tags[item].at
	if at.IsZero() {
		at = start.Time(time.Local)
	} else {
		at = time.Date(start.Year, start.Month, start.Day, at.Hour(), at.Minute(), at.Second(), at.Nanosecond(), at.Location())
	}
	p.tags[item] = dayTag{date: start, at: at}
	p.spans[item] = span
	if m, ok := p.gen.(ItemMover); ok {
		m.MoveItem(p.itemData[item], start, span)
	}

	p.removeFromBucket(oldAnchor, item)

	anchor, clipped, visible := p.clipToWindow(start, span)
	if !visible {
		p.visible = slices.DeleteFunc(p.visible, func(c Container) bool { return c == item })
		if p.gen != nil {
			p.gen.RecycleItem(item)
		}
		p.forgetItem(item)
		p.arrange.pack()
		p.logger.Debug("item left window", "op", op, "container", int(item), "start", start.String())
		return nil
	}

	p.buckets[anchor] = append(p.buckets[anchor], item)
	_, result := p.arrange.move(item, anchor, clipped)
	p.arrange.pack()

	p.logger.Debug("item retagged",
		"op", op,
		"container", int(item),
		"anchor", anchor.String(),
		"span", clipped,
		"grew", clipped > oldSpan,
		"host", result.String(),
	)
	return nil
}

func (p *Panel) removeFromBucket(d calendar.Date, item Container) {
	rest := slices.DeleteFunc(p.buckets[d], func(c Container) bool { return c == item })
	if len(rest) == 0 {
		delete(p.buckets, d)
		return
	}
	p.buckets[d] = rest
}
