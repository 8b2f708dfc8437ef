package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
// This allows styles to be regenerated when the theme changes.
type ThemedStyles struct {
	Palette *ColorPalette

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style

	// Frame
	Title     lipgloss.Style
	HelpBar   lipgloss.Style
	StatusBar lipgloss.Style

	// Grid headers
	ColumnHeader  lipgloss.Style
	WeekendHeader lipgloss.Style
	WeekNumber    lipgloss.Style

	// Day cells. Flags are layered in this order: base, other month,
	// weekend, holiday, today, selected.
	Day        lipgloss.Style
	OtherMonth lipgloss.Style
	Weekend    lipgloss.Style
	Holiday    lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	Annotation lipgloss.Style

	// Agenda items
	Item       lipgloss.Style
	AllDayItem lipgloss.Style
	ActiveItem lipgloss.Style
	Overflow   lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from the given color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{Palette: p}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.ColumnHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.WeekendHeader = s.ColumnHeader.
		Foreground(p.Weekend)

	s.WeekNumber = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.Day = lipgloss.NewStyle().
		Foreground(p.Text)

	s.OtherMonth = lipgloss.NewStyle().
		Foreground(p.Muted).
		Faint(true)

	s.Weekend = lipgloss.NewStyle().
		Foreground(p.Weekend)

	s.Holiday = lipgloss.NewStyle().
		Foreground(p.Holiday).
		Bold(true)

	s.Today = lipgloss.NewStyle().
		Foreground(p.Today).
		Bold(true).
		Underline(true)

	s.Selected = lipgloss.NewStyle().
		Background(p.Surface).
		Reverse(true)

	s.Annotation = lipgloss.NewStyle().
		Foreground(p.Warning).
		Italic(true)

	s.Item = lipgloss.NewStyle().
		Foreground(p.Secondary)

	s.AllDayItem = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.AllDay)

	s.ActiveItem = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Primary).
		Bold(true)

	s.Overflow = lipgloss.NewStyle().
		Foreground(p.Warning)

	return s
}

// activeTheme holds the currently active themed styles.
var activeTheme = NewThemedStyles(DefaultPalette())

// SetActiveTheme updates the active theme to the specified theme name.
//
// Note: This function is not thread-safe. It is designed to be called only
// from the Bubble Tea event loop, which runs on a single goroutine.
func SetActiveTheme(name ThemeName) {
	activeTheme = NewThemedStyles(GetPalette(name))
}

// GetActiveTheme returns the currently active themed styles.
func GetActiveTheme() *ThemedStyles {
	return activeTheme
}
