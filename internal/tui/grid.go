package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/tui/styles"
	"github.com/Iron-Ham/calgrid/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Continuation marks drawn on item segments cut at a row edge.
const (
	continuesBefore = "‹"
	continuesAfter  = "›"
)

// Grid is the owner side of a layout.Panel: it supplies containers through
// its arena and draws arranged placements as styled terminal text.
type Grid struct {
	panel  *layout.Panel
	arena  *arena
	styles *styles.ThemedStyles

	// active is the ID of the highlighted agenda entry.
	active string
}

// NewGrid creates a panel showing the month of start. Attach must be called
// before the first Render.
func NewGrid(start calendar.Date, cfg layout.Config, st *styles.ThemedStyles) *Grid {
	if st == nil {
		st = styles.GetActiveTheme()
	}
	return &Grid{
		panel:  layout.New(start, cfg),
		arena:  newArena(),
		styles: st,
	}
}

// Containers returns the handle source an agenda.Store should allocate its
// item containers from.
func (g *Grid) Containers() agenda.Containers { return g.arena }

// Attach initializes the panel with the grid as owner and store as item
// generator. store may be nil.
func (g *Grid) Attach(store *agenda.Store) {
	if store == nil {
		g.panel.Initialize(g.arena, nil)
		return
	}
	g.panel.Initialize(g.arena, store)
}

// Panel returns the underlying layout engine.
func (g *Grid) Panel() *layout.Panel { return g.panel }

// SetActive highlights the entry with the given ID. Empty clears it.
func (g *Grid) SetActive(id string) { g.active = id }

// measure runs a pending realization pass so Window and the tables are
// current.
func (g *Grid) measure() error {
	if !g.panel.Dirty() {
		return nil
	}
	return g.panel.Measure()
}

// Render arranges the panel within width x height cells and draws it.
func (g *Grid) Render(width, height int) (string, error) {
	placements, err := g.panel.Arrange(layout.Size{Width: width, Height: height})
	if err != nil {
		return "", err
	}

	cv := newCanvas(width, height)
	for _, pl := range placements {
		cl, ok := g.arena.cell(pl.Container)
		if !ok {
			continue
		}
		switch pl.Kind {
		case layout.KindColumnHeader:
			g.drawColumnHeader(cv, pl, cl)
		case layout.KindWeekHeader:
			cv.write(pl.X, pl.Y, pl.Width, util.Center(strconv.Itoa(cl.week), pl.Width), cv.style(g.styles.WeekNumber))
		case layout.KindDate:
			g.drawDate(cv, pl, cl)
		case layout.KindItem:
			g.drawItem(cv, pl)
		}
	}
	return cv.String(), nil
}

func (g *Grid) drawColumnHeader(cv *canvas, pl layout.Placement, cl *cell) {
	if cl.filler {
		cv.write(pl.X, pl.Y, pl.Width, util.Center("Wk", pl.Width), cv.style(g.styles.WeekNumber))
		return
	}
	st := g.styles.ColumnHeader
	if cl.weekday == time.Saturday || cl.weekday == time.Sunday {
		st = g.styles.WeekendHeader
	}
	cv.write(pl.X, pl.Y, pl.Width-1, util.Center(cl.weekday.String()[:3], pl.Width-1), cv.style(st))
}

// drawDate draws the day number line of a date cell. A cell whose items did
// not all fit ends the line with a "+n" marker.
func (g *Grid) drawDate(cv *canvas, pl layout.Placement, cl *cell) {
	day := cl.day
	if day == nil {
		return
	}
	text := strconv.Itoa(day.Date.Day)
	if day.HasAnnotation() {
		text += "•"
	}
	if day.IsHoliday {
		text += " " + day.HolidayName
	}

	width := pl.Width - 1
	if more := g.panel.Overflow(day.Date); more > 0 {
		tag := "+" + strconv.Itoa(more)
		if width > len(tag)+1 {
			width -= len(tag) + 1
			cv.write(pl.X+width+1, pl.Y, len(tag), tag, cv.style(g.styles.Overflow))
		}
	}
	cv.write(pl.X, pl.Y, width, text, cv.style(g.dayStyle(day)))
}

func (g *Grid) dayStyle(d *calendar.DayItem) lipgloss.Style {
	switch {
	case d.IsSelected:
		return g.styles.Selected
	case d.IsToday:
		return g.styles.Today
	case d.IsHoliday:
		return g.styles.Holiday
	case d.IsWeekend():
		return g.styles.Weekend
	case d.IsOtherMonth:
		return g.styles.OtherMonth
	default:
		return g.styles.Day
	}
}

func (g *Grid) drawItem(cv *canvas, pl layout.Placement) {
	data, _ := g.panel.ItemData(pl.Container)
	e, ok := data.(agenda.Entry)
	if !ok {
		return
	}

	st := g.styles.Item
	switch {
	case e.ID == g.active && g.active != "":
		st = g.styles.ActiveItem
	case e.AllDay:
		st = g.styles.AllDayItem
	}

	label := e.Label()
	if pl.ContinuesBefore {
		label = continuesBefore + label
	}
	width := pl.Width - 1
	if pl.ContinuesAfter && width > 1 {
		label = util.Fit(label, width-1) + continuesAfter
	}
	cv.write(pl.X, pl.Y, width, label, cv.style(st))
}

// glyph is one terminal column. Columns covered by the right half of a wide
// rune have empty text.
type glyph struct {
	text  string
	style int
}

// canvas is a fixed-size grid of glyphs. Styles are applied per run of equal
// style when the canvas is turned into a string.
type canvas struct {
	width  int
	lines  [][]glyph
	styles []lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	cv := &canvas{
		width:  max(width, 0),
		lines:  make([][]glyph, max(height, 0)),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for y := range cv.lines {
		row := make([]glyph, cv.width)
		for x := range row {
			row[x] = glyph{text: " "}
		}
		cv.lines[y] = row
	}
	return cv
}

// style registers s and returns its index for write.
func (cv *canvas) style(s lipgloss.Style) int {
	cv.styles = append(cv.styles, s)
	return len(cv.styles) - 1
}

// write draws text at column x of line y, fitted to width columns. Anything
// outside the canvas is dropped.
func (cv *canvas) write(x, y, width int, text string, style int) {
	if y < 0 || y >= len(cv.lines) || width <= 0 {
		return
	}
	row := cv.lines[y]
	for _, r := range util.Fit(text, width) {
		s := string(r)
		w := ansi.StringWidth(s)
		if w == 0 {
			continue
		}
		if x+w > cv.width {
			return
		}
		if x >= 0 {
			row[x] = glyph{text: s, style: style}
			for i := 1; i < w; i++ {
				row[x+i] = glyph{style: style}
			}
		}
		x += w
	}
}

func (cv *canvas) String() string {
	var b, run strings.Builder
	for y, row := range cv.lines {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := 0
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(cv.styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for _, g := range row {
			if g.style != cur {
				flush()
				cur = g.style
			}
			run.WriteString(g.text)
		}
		flush()
	}
	return b.String()
}
