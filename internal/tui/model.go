package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/errors"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/logging"
	"github.com/Iron-Ham/calgrid/internal/tui/keymap"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the TUI application state
type Model struct {
	// Core components
	grid   *Grid
	store  *agenda.Store
	keymap *keymap.Keymap
	help   help.Model
	logger *logging.Logger
	now    func() time.Time

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool
	showHelp bool
	mode     keymap.Mode

	// Resize mode: the range the active entry had when resizing started
	resizeStart calendar.Date
	resizeEnd   calendar.Date

	status    string
	statusSeq int
	err       error
	// fatal is set when the layout engine reported an unrecoverable error
	fatal error
}

// NewModel creates a new TUI model. The grid must already be attached to
// store; store may be nil.
func NewModel(grid *Grid, store *agenda.Store, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	m := Model{
		grid:   grid,
		store:  store,
		keymap: keymap.DefaultKeymap(),
		help:   help.New(),
		logger: logger.WithComponent("tui"),
		now:    time.Now,
		mode:   keymap.ModeNormal,
	}

	anchor := grid.panel.Current().Anchor()
	sel := m.today()
	if !sel.SameMonth(anchor) {
		sel = anchor
	}
	grid.panel.Select(sel)
	return m
}

// Init loads the agenda in the background.
func (m Model) Init() tea.Cmd {
	return reloadAgenda(m.store)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dayChangedMsg:
		m.logger.Info("day changed", "today", msg.today.String())
		m.grid.panel.Invalidate()
		return m, nil

	case agendaChangedMsg:
		m.logger.Debug("agenda sources changed", "paths", msg.paths)
		return m, reloadAgenda(m.store)

	case agendaLoadedMsg:
		if m.store != nil {
			m.store.Replace(msg.entries, msg.err)
		}
		m.grid.panel.Invalidate()
		m.err = msg.err
		if msg.err != nil {
			m.logger.Warn("agenda load failed", "error", msg.err)
		}
		return m.setStatus(fmt.Sprintf("%d agenda entries", m.store.Len()))

	case agendaSavedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("save %s: %w", msg.path, msg.err)
			m.logger.Error("agenda save failed", "path", msg.path, "error", msg.err)
			return m, nil
		}
		return m.setStatus("saved " + filepath.Base(msg.path))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(msg, m.mode)
	if !ok {
		return m, nil
	}
	m.err = nil
	if m.mode == keymap.ModeResize {
		return m.handleResizeCommand(cmd)
	}
	return m.handleNormalCommand(cmd)
}

func (m Model) handleNormalCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	p := m.grid.panel

	switch cmd {
	case keymap.CmdPrevDay:
		return m.check(m.moveSelection(-1))
	case keymap.CmdNextDay:
		return m.check(m.moveSelection(1))
	case keymap.CmdPrevWeek:
		return m.check(m.moveSelection(-calendar.DaysPerWeek))
	case keymap.CmdNextWeek:
		return m.check(m.moveSelection(calendar.DaysPerWeek))
	case keymap.CmdToday:
		today := m.today()
		p.Select(today)
		return m.check(p.ScrollToDate(today))

	case keymap.CmdLineUp:
		return m.check(m.scroll(p.LineUp))
	case keymap.CmdLineDown:
		return m.check(m.scroll(p.LineDown))
	case keymap.CmdPageUp:
		return m.check(m.scroll(p.PageUp))
	case keymap.CmdPageDown:
		return m.check(m.scroll(p.PageDown))

	case keymap.CmdNextItem:
		return m.cycleItem(1)
	case keymap.CmdPrevItem:
		return m.cycleItem(-1)
	case keymap.CmdResizeItem:
		return m.startResize()
	case keymap.CmdReload:
		if m.store == nil {
			return m.setStatus("no agenda files configured")
		}
		m.status = "reloading agenda…"
		return m, reloadAgenda(m.store)

	case keymap.CmdToggleWeekNumbers:
		p.SetShowWeekNumbers(!p.ShowWeekNumbers())
	case keymap.CmdMoreRows:
		p.SetRows(p.Rows() + 1)
	case keymap.CmdFewerRows:
		p.SetRows(p.Rows() - 1)
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	p := m.grid.panel
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.check(m.scroll(p.MouseWheelUp))
	case tea.MouseButtonWheelDown:
		return m.check(m.scroll(p.MouseWheelDown))
	case tea.MouseButtonWheelLeft:
		return m.check(p.MouseWheelLeft())
	case tea.MouseButtonWheelRight:
		return m.check(p.MouseWheelRight())
	}
	return m, nil
}

// check turns a layout error into UI state. Unsupported scrolls are only
// reported; any other fatal error ends the program.
func (m Model) check(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	if errors.Is(err, errors.ErrUnsupportedScroll) {
		m.logger.Debug("scroll ignored", "error", err)
		return m.setStatus("horizontal scrolling is not supported")
	}
	m.logger.Error("layout error", "error", err)
	m.err = err
	if errors.IsFatal(err) {
		m.fatal = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	return m, clearStatusAfter(m.statusSeq)
}

func (m Model) today() calendar.Date {
	return calendar.DateOf(m.now())
}

// selected returns the selected date, or today when nothing is selected.
func (m Model) selected() calendar.Date {
	if d, ok := m.grid.panel.Selected(); ok {
		return d
	}
	return m.today()
}

// moveSelection moves the selection by delta days and scrolls it into view.
func (m Model) moveSelection(delta int) error {
	d := m.selected().AddDays(delta)
	m.grid.panel.Select(d)
	return m.reveal(d)
}

// reveal scrolls so that d is realized. A date one week outside the window
// is brought in by a single line scroll; anything further away is jumped to.
func (m Model) reveal(d calendar.Date) error {
	p := m.grid.panel
	if err := m.grid.measure(); err != nil {
		return err
	}

	first, last := p.Window()
	var err error
	switch {
	case d.Before(first):
		err = p.LineUp()
	case d.After(last):
		err = p.LineDown()
	default:
		return nil
	}
	if err != nil {
		return err
	}

	if err := m.grid.measure(); err != nil {
		return err
	}
	if first, last = p.Window(); d.Before(first) || d.After(last) {
		return p.ScrollToDate(d)
	}
	return nil
}

// scroll runs a scroll operation and moves a selection that left the
// window to the first day of the current view.
func (m Model) scroll(op func() error) error {
	if err := op(); err != nil {
		return err
	}
	p := m.grid.panel
	if err := m.grid.measure(); err != nil {
		return err
	}
	first, last := p.Window()
	if sel := m.selected(); sel.Before(first) || sel.After(last) {
		p.Select(p.Current().Anchor())
	}
	return nil
}

// visibleEntries returns the distinct entries shown in the window, in
// realization order.
func (m Model) visibleEntries() []agenda.Entry {
	p := m.grid.panel
	var out []agenda.Entry
	seen := make(map[string]bool)
	for _, c := range p.VisibleItems() {
		data, _ := p.ItemData(c)
		e, ok := data.(agenda.Entry)
		if !ok || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

// cycleItem moves the highlight to the next or previous visible entry.
func (m Model) cycleItem(step int) (tea.Model, tea.Cmd) {
	if err := m.grid.measure(); err != nil {
		return m.check(err)
	}
	entries := m.visibleEntries()
	if len(entries) == 0 {
		m.grid.SetActive("")
		return m.setStatus("no agenda items in view")
	}

	i := slices.IndexFunc(entries, func(e agenda.Entry) bool { return e.ID == m.grid.active })
	switch {
	case i < 0 && step < 0:
		i = len(entries) - 1
	case i < 0:
		i = 0
	default:
		i = (i + step + len(entries)) % len(entries)
	}
	e := entries[i]
	m.grid.SetActive(e.ID)
	return m.setStatus(describeEntry(e))
}

// activeContainer returns the container showing the active entry.
func (m Model) activeContainer() (layout.Container, bool) {
	p := m.grid.panel
	for _, c := range p.VisibleItems() {
		data, _ := p.ItemData(c)
		if e, ok := data.(agenda.Entry); ok && e.ID == m.grid.active {
			return c, true
		}
	}
	return layout.NoContainer, false
}

// activeRange returns the range of the active entry as the panel tags it.
func (m Model) activeRange() (layout.Container, calendar.Date, calendar.Date, bool) {
	c, ok := m.activeContainer()
	if !ok {
		return c, calendar.Date{}, calendar.Date{}, false
	}
	start, ok := m.grid.panel.Day(c)
	if !ok {
		return c, calendar.Date{}, calendar.Date{}, false
	}
	return c, start, start.AddDays(m.grid.panel.Span(c) - 1), true
}

// activeEntry looks the active entry up in the store, which sees moves the
// panel's item data does not.
func (m Model) activeEntry() (agenda.Entry, bool) {
	if m.store == nil || m.grid.active == "" {
		return agenda.Entry{}, false
	}
	for _, e := range m.store.Entries() {
		if e.ID == m.grid.active {
			return e, true
		}
	}
	return agenda.Entry{}, false
}

func (m Model) startResize() (tea.Model, tea.Cmd) {
	if m.grid.active == "" {
		return m.setStatus("select an item with tab first")
	}
	_, start, end, ok := m.activeRange()
	if !ok {
		return m.setStatus("the selected item is not in view")
	}
	m.resizeStart, m.resizeEnd = start, end
	m.mode = keymap.ModeResize
	m.status = "resizing " + start.String() + " – " + end.String()
	return m, nil
}

func (m Model) handleResizeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdConfirm:
		m.mode = keymap.ModeNormal
		e, ok := m.activeEntry()
		if !ok || e.Source == "" {
			return m.setStatus("nothing to save")
		}
		m.status = ""
		return m, saveAgenda(m.store, e.Source)

	case keymap.CmdCancel:
		m.mode = keymap.ModeNormal
		m.status = ""
		if c, _, _, ok := m.activeRange(); ok {
			return m.check(m.grid.panel.SetRange(c, m.resizeStart, m.resizeEnd))
		}
		if e, ok := m.activeEntry(); ok {
			m.store.MoveItem(e, m.resizeStart, m.resizeStart.DaysUntil(m.resizeEnd)+1)
			m.grid.panel.Invalidate()
		}
		return m, nil

	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}

	c, start, end, ok := m.activeRange()
	if !ok {
		m.mode = keymap.ModeNormal
		return m.setStatus("the item left the view")
	}
	switch cmd {
	case keymap.CmdExtend:
		end = end.AddDays(1)
	case keymap.CmdShrink:
		if !end.After(start) {
			return m, nil
		}
		end = end.AddDays(-1)
	case keymap.CmdMoveLater:
		start, end = start.AddDays(1), end.AddDays(1)
	case keymap.CmdMoveEarlier:
		start, end = start.AddDays(-1), end.AddDays(-1)
	default:
		return m, nil
	}
	if err := m.grid.panel.SetRange(c, start, end); err != nil {
		return m.check(err)
	}
	m.status = "resizing " + start.String() + " – " + end.String()
	return m, nil
}

func describeEntry(e agenda.Entry) string {
	text := e.Title + " · " + e.StartDate().String()
	if e.Span() > 1 {
		text += " – " + e.EndDate().String()
	}
	if e.Location != "" {
		text += " @ " + e.Location
	}
	return text
}
