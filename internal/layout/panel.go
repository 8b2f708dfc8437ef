package layout

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// Columns is the number of date columns in the grid.
const Columns = calendar.DaysPerWeek

// Default configuration values.
const (
	DefaultRows        = 6
	DefaultWheelLines  = 1
	DefaultItemHeight  = 1
	DefaultGutterWidth = 4
	MaxRows            = 12
)

// Config configures a Panel.
type Config struct {
	System          calendar.System
	Rows            int
	ShowWeekNumbers bool
	WheelLines      int
	ItemHeight      int
	GutterWidth     int
	Holidays        calendar.HolidayProvider
	// Now returns the current time. It decides the today flag.
	Now    func() time.Time
	Bus    *event.Bus
	Logger *logging.Logger
}

// DefaultConfig returns the ISO calendar with six rows and week numbers.
func DefaultConfig() Config {
	return Config{
		System:          calendar.ISO,
		Rows:            DefaultRows,
		ShowWeekNumbers: true,
		WheelLines:      DefaultWheelLines,
		ItemHeight:      DefaultItemHeight,
		GutterWidth:     DefaultGutterWidth,
	}
}

// dayTag is the date correlation of an item container.
type dayTag struct {
	date calendar.Date
	at   time.Time
}

// child is a container realized in the current pass, in display grid
// coordinates: row 0 holds column headers, column 0 the week-number gutter
// when it is shown.
type child struct {
	container Container
	kind      Kind
	date      calendar.Date
	row       int
	column    int
	span      int
}

// Panel is the virtualizing calendar layout engine. It maps an endless
// sequence of weeks onto a fixed number of rows, reusing containers as the
// window moves. A Panel is not safe for concurrent use; measure, arrange and
// scroll calls must come from one goroutine.
type Panel struct {
	cfg    Config
	sys    calendar.System
	rows   int
	bus    *event.Bus
	logger *logging.Logger

	owner Owner
	gen   ItemGenerator

	current    *calendar.MonthView
	next       *calendar.MonthView
	weekOffset int
	direction  Direction
	vOffset    float64
	dirty      bool
	measured   bool

	tables        *Tables
	kinds         map[Container]Kind
	children      []child
	weekHeaders   []Container
	columnHeaders []Container
	windowFirst   calendar.Date
	windowLast    calendar.Date

	selected    calendar.Date
	annotations map[calendar.Date]string

	tags      map[Container]dayTag
	spans     map[Container]int
	itemData  map[Container]any
	visible   []Container
	buckets   map[calendar.Date][]Container
	arrange   *arranger
	overflow  map[calendar.Date]int
	placement []Placement
}

// New returns a panel whose current view is the month containing start.
// Initialize must be called before the first Measure.
func New(start calendar.Date, cfg Config) *Panel {
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Rows > MaxRows {
		cfg.Rows = MaxRows
	}
	if cfg.WheelLines <= 0 {
		cfg.WheelLines = DefaultWheelLines
	}
	if cfg.ItemHeight <= 0 {
		cfg.ItemHeight = DefaultItemHeight
	}
	if cfg.GutterWidth <= 0 {
		cfg.GutterWidth = DefaultGutterWidth
	}
	if cfg.Holidays == nil {
		cfg.Holidays = calendar.NoHolidays{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger()
	}

	p := &Panel{
		cfg:         cfg,
		sys:         cfg.System,
		rows:        cfg.Rows,
		bus:         cfg.Bus,
		logger:      cfg.Logger.WithComponent("layout"),
		tables:      NewTables(),
		kinds:       make(map[Container]Kind),
		annotations: make(map[calendar.Date]string),
		tags:        make(map[Container]dayTag),
		spans:       make(map[Container]int),
		itemData:    make(map[Container]any),
		buckets:     make(map[calendar.Date][]Container),
		overflow:    make(map[calendar.Date]int),
		dirty:       true,
	}
	p.arrange = newArranger(p.tagTime)
	p.current = calendar.NewMonthView(start, p.sys)
	p.next = p.current.Next()
	p.weekOffset = p.current.WeekIndexOf(start.FirstOfMonth())
	return p
}

// Initialize supplies the owner and the item generator. gen may be nil.
func (p *Panel) Initialize(owner Owner, gen ItemGenerator) {
	p.owner = owner
	p.gen = gen
	p.dirty = true
}

// Initialized reports whether Initialize has been called with an owner.
func (p *Panel) Initialized() bool { return p.owner != nil }

// Current returns the current month view.
func (p *Panel) Current() *calendar.MonthView { return p.current }

// Next returns the month view following the current one.
func (p *Panel) Next() *calendar.MonthView { return p.next }

// WeekOffset returns how many weeks of the current view are scrolled past.
func (p *Panel) WeekOffset() int { return p.weekOffset }

// Direction returns the direction of the last view load.
func (p *Panel) Direction() Direction { return p.direction }

// Rows returns the number of week rows.
func (p *Panel) Rows() int { return p.rows }

// SetRows changes the number of week rows, clamped to [1, MaxRows].
func (p *Panel) SetRows(n int) {
	n = clamp(n, 1, MaxRows)
	if n != p.rows {
		p.rows = n
		p.dirty = true
	}
}

// ShowWeekNumbers reports whether the week-number gutter is realized.
func (p *Panel) ShowWeekNumbers() bool { return p.cfg.ShowWeekNumbers }

// SetShowWeekNumbers shows or hides the week-number gutter.
func (p *Panel) SetShowWeekNumbers(show bool) {
	if show != p.cfg.ShowWeekNumbers {
		p.cfg.ShowWeekNumbers = show
		p.dirty = true
	}
}

// Dirty reports whether a measure pass is pending.
func (p *Panel) Dirty() bool { return p.dirty }

// Invalidate marks the panel dirty, e.g. after the day changed or items were
// reloaded.
func (p *Panel) Invalidate() { p.dirty = true }

// Tables exposes the read accessors of the lookup tables.
func (p *Panel) Tables() *Tables { return p.tables }

// KindOf returns the kind of a container the panel has seen.
func (p *Panel) KindOf(c Container) (Kind, bool) {
	k, ok := p.kinds[c]
	return k, ok
}

// Window returns the first and last realized date of the last pass.
func (p *Panel) Window() (calendar.Date, calendar.Date) {
	return p.windowFirst, p.windowLast
}

// Select marks d as the selected date. The zero Date clears the selection.
func (p *Panel) Select(d calendar.Date) {
	if p.selected == d {
		return
	}
	p.selected = d
	p.dirty = true
}

// Selected returns the selected date and whether one is set.
func (p *Panel) Selected() (calendar.Date, bool) {
	return p.selected, !p.selected.IsZero()
}

// SetAnnotation attaches free text to d. Empty text removes it.
func (p *Panel) SetAnnotation(d calendar.Date, text string) {
	if text == "" {
		delete(p.annotations, d)
	} else {
		p.annotations[d] = text
	}
	p.dirty = true
}

// Annotation returns the annotation of d.
func (p *Panel) Annotation(d calendar.Date) string { return p.annotations[d] }

// SetDay tags container c with a date. Accepted tags are time.Time,
// calendar.Date, an int day of the current month (clamped to the month) and
// nil, which removes the tag. Any other type is a fatal error.
func (p *Panel) SetDay(c Container, tag any) error {
	switch v := tag.(type) {
	case nil:
		delete(p.tags, c)
	case time.Time:
		p.tags[c] = dayTag{date: calendar.DateOf(v), at: v}
	case calendar.Date:
		p.tags[c] = dayTag{date: v, at: v.Time(time.Local)}
	case int:
		anchor := p.current.Anchor()
		day := clamp(v, 1, anchor.LastOfMonth().Day)
		d := calendar.NewDate(anchor.Year, anchor.Month, day)
		p.tags[c] = dayTag{date: d, at: d.Time(time.Local)}
	default:
		return errors.NewLayoutError("set_day", errors.ErrInvalidDateTag).
			WithContainer(int(c)).
			WithMessage(fmt.Sprintf("unsupported date tag %T", tag))
	}
	return nil
}

// Day returns the date tag of c. Date containers report the date they show.
func (p *Panel) Day(c Container) (calendar.Date, bool) {
	if t, ok := p.tags[c]; ok {
		return t.date, true
	}
	return p.tables.DateOf(c)
}

// DayIndex returns the day of month of c's tag, 1 when c has none.
func (p *Panel) DayIndex(c Container) int {
	if d, ok := p.Day(c); ok {
		return d.Day
	}
	return 1
}

// SetSpan sets the number of days an item covers. Values below one are
// treated as one.
func (p *Panel) SetSpan(c Container, span int) {
	p.spans[c] = max(span, 1)
}

// Span returns the span of item c.
func (p *Panel) Span(c Container) int {
	if s, ok := p.spans[c]; ok {
		return s
	}
	return 1
}

// ItemData returns the data item shown by container c.
func (p *Panel) ItemData(c Container) (any, bool) {
	d, ok := p.itemData[c]
	return d, ok
}

// ItemsOn returns the visible items whose host starts on d, in bucket order.
func (p *Panel) ItemsOn(d calendar.Date) []Container {
	return append([]Container(nil), p.buckets[d]...)
}

// VisibleItems returns every item container shown by the last pass.
func (p *Panel) VisibleItems() []Container {
	return append([]Container(nil), p.visible...)
}

// Hosts returns the hosts of the last pass.
func (p *Panel) Hosts() []*Host {
	return append([]*Host(nil), p.arrange.hosts...)
}

// HostOf returns the host holding item c.
func (p *Panel) HostOf(c Container) (*Host, bool) {
	return p.arrange.hostOf(c)
}

// HostsCovering returns the hosts whose span includes d, ordered by lane.
func (p *Panel) HostsCovering(d calendar.Date) []*Host {
	return p.arrange.covering(d)
}

// PrecedingCount returns the slots taken on d by hosts anchored earlier.
func (p *Panel) PrecedingCount(d calendar.Date) int {
	return p.arrange.preceding[d]
}

// Overflow returns how many items on d did not fit in the last Arrange.
func (p *Panel) Overflow(d calendar.Date) int { return p.overflow[d] }

func (p *Panel) tagTime(c Container) time.Time {
	return p.tags[c].at
}

func (p *Panel) publish(e event.Event) {
	p.bus.Publish(e)
}

func (p *Panel) listening(eventType string) bool {
	return p.bus.HasSubscribers(eventType)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
