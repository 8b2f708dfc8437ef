package tui

import (
	"strconv"
	"strings"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/tui/keymap"
	"github.com/Iron-Ham/calgrid/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	footer := m.renderFooter()
	gridHeight := max(m.height-1-lipgloss.Height(footer), layout.HeaderHeight+m.grid.panel.Rows())
	body, err := m.grid.Render(m.width, gridHeight)
	if err != nil {
		body = m.grid.styles.Error.Render("layout error: " + err.Error())
	}

	// The header describes the selection, which is only realized after the
	// grid has been arranged.
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, footer)
}

func (m Model) renderHeader() string {
	title := m.grid.styles.Title.Render(m.grid.panel.Current().Title())
	info := m.grid.styles.Secondary.Render(m.selectionInfo())

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(info)
	if gap < 1 {
		return util.TruncateANSI(title+" "+info, m.width)
	}
	return title + strings.Repeat(" ", gap) + info
}

// selectionInfo describes the selected date: its week, holiday, annotation
// and the number of agenda entries covering it.
func (m Model) selectionInfo() string {
	d := m.selected()
	parts := []string{d.Weekday().String()[:3] + " " + d.String()}
	if item, ok := m.dayItem(d); ok {
		parts = append(parts, "week "+strconv.Itoa(item.WeekOfYear))
		if item.IsHoliday {
			parts = append(parts, item.HolidayName)
		}
		if item.HasAnnotation() {
			parts = append(parts, item.Annotation)
		}
	}
	if m.store != nil {
		switch n := len(m.store.On(d)); n {
		case 0:
		case 1:
			parts = append(parts, "1 entry")
		default:
			parts = append(parts, strconv.Itoa(n)+" entries")
		}
	}
	return strings.Join(parts, " · ")
}

// dayItem returns the realized DayItem of d.
func (m Model) dayItem(d calendar.Date) (*calendar.DayItem, bool) {
	t := m.grid.panel.Tables()
	c, ok := t.ContainerFor(d)
	if !ok {
		return nil, false
	}
	return t.DayItemOf(c)
}

func (m Model) renderFooter() string {
	st := m.grid.styles

	var status string
	switch {
	case m.err != nil:
		status = st.Error.Render(m.err.Error())
	case m.mode == keymap.ModeResize:
		status = st.Warning.Render("RESIZE") + " " + st.StatusBar.Render(m.status)
	case m.status != "":
		status = st.StatusBar.Render(m.status)
	}

	helpView := st.HelpBar.Render(m.help.View(m.keymap.Help(m.mode)))
	return lipgloss.JoinVertical(lipgloss.Left, util.TruncateANSI(status, m.width), helpView)
}
