package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName names a color theme.
type ThemeName string

// Built-in themes.
const (
	ThemeDefault        ThemeName = "default"
	ThemeDracula        ThemeName = "dracula"
	ThemeNord           ThemeName = "nord"
	ThemeSolarizedLight ThemeName = "solarized-light"
	ThemeGruvbox        ThemeName = "gruvbox"
	ThemeTokyoNight     ThemeName = "tokyo-night"
	ThemeCatppuccin     ThemeName = "catppuccin"
)

// ColorPalette is the set of colors the calendar is drawn with.
type ColorPalette struct {
	Primary   lipgloss.Color // title, column headers
	Secondary lipgloss.Color // agenda items
	Warning   lipgloss.Color // overflow markers
	Error     lipgloss.Color // load errors
	Muted     lipgloss.Color // week numbers, days of adjacent months
	Surface   lipgloss.Color // selection background
	Text      lipgloss.Color // day numbers
	Border    lipgloss.Color // cell separators

	Today   lipgloss.Color
	Weekend lipgloss.Color
	Holiday lipgloss.Color
	AllDay  lipgloss.Color
}

// swatch lists a palette's colors in ColorPalette field order.
type swatch [12]string

func (s swatch) palette() *ColorPalette {
	c := func(i int) lipgloss.Color { return lipgloss.Color(s[i]) }
	return &ColorPalette{
		Primary: c(0), Secondary: c(1), Warning: c(2), Error: c(3),
		Muted: c(4), Surface: c(5), Text: c(6), Border: c(7),
		Today: c(8), Weekend: c(9), Holiday: c(10), AllDay: c(11),
	}
}

type builtinTheme struct {
	name   ThemeName
	colors swatch
}

// builtins is kept in the order themes are listed to the user.
var builtins = []builtinTheme{
	{ThemeDefault, swatch{
		"#A78BFA", "#10B981", "#F59E0B", "#F87171", "#9CA3AF", "#1F2937", "#F9FAFB", "#6B7280",
		"#FBBF24", "#60A5FA", "#F472B6", "#FB923C",
	}},
	{ThemeDracula, swatch{
		"#BD93F9", "#50FA7B", "#F1FA8C", "#FF5555", "#6272A4", "#44475A", "#F8F8F2", "#44475A",
		"#F1FA8C", "#8BE9FD", "#FF79C6", "#FFB86C",
	}},
	// Nord has no pink; holidays use aurora purple.
	{ThemeNord, swatch{
		"#88C0D0", "#A3BE8C", "#EBCB8B", "#BF616A", "#4C566A", "#3B4252", "#ECEFF4", "#3B4252",
		"#EBCB8B", "#81A1C1", "#B48EAD", "#D08770",
	}},
	{ThemeSolarizedLight, swatch{
		"#268BD2", "#859900", "#B58900", "#DC322F", "#93A1A1", "#EEE8D5", "#657B83", "#EEE8D5",
		"#CB4B16", "#6C71C4", "#D33682", "#B58900",
	}},
	{ThemeGruvbox, swatch{
		"#83A598", "#B8BB26", "#FABD2F", "#FB4934", "#928374", "#3C3836", "#EBDBB2", "#3C3836",
		"#FABD2F", "#83A598", "#D3869B", "#FE8019",
	}},
	{ThemeTokyoNight, swatch{
		"#7AA2F7", "#9ECE6A", "#E0AF68", "#F7768E", "#565F89", "#292E42", "#C0CAF5", "#292E42",
		"#E0AF68", "#BB9AF7", "#FF007C", "#FF9E64",
	}},
	{ThemeCatppuccin, swatch{
		"#89B4FA", "#A6E3A1", "#F9E2AF", "#F38BA8", "#6C7086", "#313244", "#CDD6F4", "#313244",
		"#F9E2AF", "#CBA6F7", "#F5C2E7", "#FAB387",
	}},
}

// BuiltinThemes returns the built-in theme names in display order.
func BuiltinThemes() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = string(b.name)
	}
	return names
}

// ValidThemes returns the built-in theme names followed by the custom ones.
func ValidThemes() []string {
	return append(BuiltinThemes(), CustomThemeNames()...)
}

// IsValidTheme reports whether name is a built-in or registered custom theme.
func IsValidTheme(name string) bool {
	return IsBuiltinTheme(name) || IsCustomTheme(name)
}

// IsBuiltinTheme reports whether name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.ContainsFunc(builtins, func(b builtinTheme) bool { return string(b.name) == name })
}

// DefaultPalette returns a fresh copy of the default palette.
func DefaultPalette() *ColorPalette {
	return builtins[0].colors.palette()
}

// GetPalette returns the palette of a custom or built-in theme, preferring
// the custom one. Unknown names get the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	for _, b := range builtins {
		if b.name == name {
			return b.colors.palette()
		}
	}
	return DefaultPalette()
}
