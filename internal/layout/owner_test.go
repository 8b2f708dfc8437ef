package layout

import (
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/event"
)

// fakeOwner hands out sequential container handles and records every call.
type fakeOwner struct {
	next          Container
	created       map[Kind]int
	dates         map[Container]*calendar.DayItem
	weekHeaders   map[Container]int
	columnHeaders map[Container]time.Weekday
	fillers       int
	cleared       []Container
	height        int
	heights       map[calendar.Date]int // overrides height per date
}

func newFakeOwner() *fakeOwner {
	return &fakeOwner{
		created:       make(map[Kind]int),
		dates:         make(map[Container]*calendar.DayItem),
		weekHeaders:   make(map[Container]int),
		columnHeaders: make(map[Container]time.Weekday),
		height:        1,
	}
}

func (o *fakeOwner) newContainer(k Kind) Container {
	c := o.next
	o.next++
	o.created[k]++
	return c
}

func (o *fakeOwner) ContainerForDate() Container         { return o.newContainer(KindDate) }
func (o *fakeOwner) ContainerForWeekHeader() Container   { return o.newContainer(KindWeekHeader) }
func (o *fakeOwner) ContainerForColumnHeader() Container { return o.newContainer(KindColumnHeader) }

func (o *fakeOwner) PrepareDate(c Container, item *calendar.DayItem) { o.dates[c] = item }
func (o *fakeOwner) PrepareWeekHeader(c Container, week int)         { o.weekHeaders[c] = week }

func (o *fakeOwner) PrepareColumnHeader(c Container, day time.Weekday, filler bool) {
	if filler {
		o.fillers++
		return
	}
	o.columnHeaders[c] = day
}

func (o *fakeOwner) ClearContainer(c Container) {
	delete(o.dates, c)
	o.cleared = append(o.cleared, c)
}

func (o *fakeOwner) DesiredHeight(c Container) int {
	if item, ok := o.dates[c]; ok {
		if h, ok := o.heights[item.Date]; ok {
			return h
		}
	}
	return o.height
}

// fakeItem is an agenda item for fakeGenerator. tag is handed to SetDay.
type fakeItem struct {
	title string
	tag   any
	span  int
}

// fakeGenerator realizes item i as container 1000+i.
type fakeGenerator struct {
	items    []fakeItem
	recycled []Container
	moved    map[string]calendar.Date
}

func (g *fakeGenerator) ItemCount() int { return len(g.items) }

func (g *fakeGenerator) RealizeItem(i int, t Tagger) (Container, any, error) {
	c := itemContainer(i)
	it := g.items[i]
	if err := t.SetDay(c, it.tag); err != nil {
		return c, nil, err
	}
	t.SetSpan(c, it.span)
	return c, it.title, nil
}

func (g *fakeGenerator) RecycleItem(c Container) {
	g.recycled = append(g.recycled, c)
}

func (g *fakeGenerator) MoveItem(data any, start calendar.Date, span int) {
	if g.moved == nil {
		g.moved = make(map[string]calendar.Date)
	}
	g.moved[data.(string)] = start
	for i := range g.items {
		if g.items[i].title == data {
			g.items[i].tag = start
			g.items[i].span = span
		}
	}
}

func itemContainer(i int) Container { return Container(1000 + i) }

var sundayFirst = calendar.System{Rule: calendar.FirstDay, FirstDayOfWeek: time.Sunday}

func date(y int, m time.Month, d int) calendar.Date { return calendar.NewDate(y, m, d) }

// newTestPanel returns an initialized February 2024 panel with five rows,
// Sunday as first day and week numbers shown.
func newTestPanel(t *testing.T, gen ItemGenerator) (*Panel, *fakeOwner, *event.Bus) {
	t.Helper()

	bus := event.NewBus()
	cfg := DefaultConfig()
	cfg.System = sundayFirst
	cfg.Rows = 5
	cfg.Bus = bus
	cfg.Now = func() time.Time { return time.Date(2024, time.February, 14, 9, 30, 0, 0, time.Local) }

	p := New(date(2024, time.February, 1), cfg)
	owner := newFakeOwner()
	p.Initialize(owner, gen)
	return p, owner, bus
}

func mustMeasure(t *testing.T, p *Panel) {
	t.Helper()
	if err := p.Measure(); err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if err := p.Tables().Check(); err != nil {
		t.Fatalf("invariant check failed: %v", err)
	}
}
