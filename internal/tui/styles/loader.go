package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThemeFile is a custom theme as stored in YAML.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Author      string      `yaml:"author,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"` // only "1" is understood
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors holds hex colors (#RGB or #RRGGBB). The calendar colors are
// optional and fall back to a base color each.
type ThemeColors struct {
	Primary   string              `yaml:"primary"`
	Secondary string              `yaml:"secondary"`
	Warning   string              `yaml:"warning"`
	Error     string              `yaml:"error"`
	Muted     string              `yaml:"muted"`
	Surface   string              `yaml:"surface"`
	Text      string              `yaml:"text"`
	Border    string              `yaml:"border"`
	Calendar  ThemeCalendarColors `yaml:"calendar,omitempty"`
}

// ThemeCalendarColors are the colors of day cell states.
type ThemeCalendarColors struct {
	Today   string `yaml:"today,omitempty"`
	Weekend string `yaml:"weekend,omitempty"`
	Holiday string `yaml:"holiday,omitempty"`
	AllDay  string `yaml:"all_day,omitempty"`
}

const baseColors = 8

// colorKeys names each swatch slot the way it is spelled in a theme file.
var colorKeys = swatch{
	"primary", "secondary", "warning", "error", "muted", "surface", "text", "border",
	"calendar.today", "calendar.weekend", "calendar.holiday", "calendar.all_day",
}

// calendarFallback is the base slot each calendar slot inherits when unset:
// today is warning, weekend primary, holiday error and all-day secondary.
var calendarFallback = [4]int{2, 0, 3, 1}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func (c ThemeColors) swatch() swatch {
	return swatch{
		c.Primary, c.Secondary, c.Warning, c.Error, c.Muted, c.Surface, c.Text, c.Border,
		c.Calendar.Today, c.Calendar.Weekend, c.Calendar.Holiday, c.Calendar.AllDay,
	}
}

// LoadThemeFile reads and validates a theme file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate reports the first problem with t, checking colors in swatch order.
func (t *ThemeFile) Validate() error {
	switch {
	case t.Name == "":
		return errors.New("theme name is required")
	case t.Version == "":
		return errors.New("theme version is required")
	case t.Version != "1":
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	for i, color := range t.Colors.swatch() {
		if color == "" {
			if i < baseColors {
				return fmt.Errorf("color '%s' is required", colorKeys[i])
			}
			continue
		}
		if !isValidHexColor(color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", colorKeys[i], color)
		}
	}
	return nil
}

// ToPalette resolves the theme into a palette, filling unset calendar colors.
func (t *ThemeFile) ToPalette() *ColorPalette {
	sw := t.Colors.swatch()
	for i, base := range calendarFallback {
		if sw[baseColors+i] == "" {
			sw[baseColors+i] = sw[base]
		}
	}
	return sw.palette()
}

var customThemes = make(map[ThemeName]*ThemeFile)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	return customThemes[name]
}

// CustomThemeNames returns the names of all registered custom themes, sorted.
func CustomThemeNames() []string {
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// ClearCustomThemes forgets every registered custom theme.
func ClearCustomThemes() {
	customThemes = make(map[ThemeName]*ThemeFile)
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	_, ok := customThemes[ThemeName(name)]
	return ok
}

// themeNameFromPath derives a theme name from its file name.
func themeNameFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
}

// RegisterThemeFile loads the theme at path and registers it under its file
// name. Built-in themes cannot be overridden.
func RegisterThemeFile(path string) (ThemeName, error) {
	name := themeNameFromPath(path)
	if IsBuiltinTheme(name) {
		return "", fmt.Errorf("%s: cannot override built-in theme '%s'", filepath.Base(path), name)
	}
	theme, err := LoadThemeFile(path)
	if err != nil {
		return "", err
	}
	RegisterCustomTheme(ThemeName(name), theme)
	return ThemeName(name), nil
}

var themesDirFn = defaultThemesDir

// defaultThemesDir is $XDG_CONFIG_HOME/calgrid/themes, else ~/.config/calgrid/themes.
func defaultThemesDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "calgrid", "themes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".calgrid", "themes")
	}
	return filepath.Join(home, ".config", "calgrid", "themes")
}

// ThemesDir returns the directory where custom themes are stored.
func ThemesDir() string {
	return themesDirFn()
}

// SetThemesDirFunc replaces the themes directory lookup and returns the old one.
func SetThemesDirFunc(fn func() string) func() string {
	prev := themesDirFn
	themesDirFn = fn
	return prev
}

// DiscoverCustomThemes scans the themes directory and registers all valid
// themes. A missing directory is not an error.
func DiscoverCustomThemes() ([]string, []error) {
	dir := ThemesDir()

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	var loaded []string
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		themeName, err := RegisterThemeFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		loaded = append(loaded, string(themeName))
	}

	return loaded, errs
}

// ExportTheme renders a custom or built-in theme as theme-file YAML.
func ExportTheme(name ThemeName) ([]byte, error) {
	themeFile := GetCustomTheme(name)
	if themeFile == nil {
		themeFile = PaletteToThemeFile(string(name), GetPalette(name))
	}
	return yaml.Marshal(themeFile)
}

// PaletteToThemeFile converts a ColorPalette to a ThemeFile.
func PaletteToThemeFile(name string, p *ColorPalette) *ThemeFile {
	var c ThemeColors
	c.Primary, c.Secondary, c.Warning, c.Error = string(p.Primary), string(p.Secondary), string(p.Warning), string(p.Error)
	c.Muted, c.Surface, c.Text, c.Border = string(p.Muted), string(p.Surface), string(p.Text), string(p.Border)
	c.Calendar = ThemeCalendarColors{
		Today:   string(p.Today),
		Weekend: string(p.Weekend),
		Holiday: string(p.Holiday),
		AllDay:  string(p.AllDay),
	}
	return &ThemeFile{
		Name:        name,
		Description: fmt.Sprintf("Exported from calgrid built-in theme '%s'", name),
		Version:     "1",
		Colors:      c,
	}
}

// SaveTheme writes theme to <themes dir>/<name>.yaml.
func SaveTheme(name string, theme *ThemeFile) error {
	dir := ThemesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}

	data, err := yaml.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshaling theme: %w", err)
	}

	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing theme file: %w", err)
	}

	return nil
}
