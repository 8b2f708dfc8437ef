package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Iron-Ham/calgrid/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the calendar grid.

Besides the built-in themes, custom themes can be stored as YAML files
in ~/.config/calgrid/themes/. A theme may also set the calendar colors
(today, weekend, holiday, all_day); unset ones fall back to the base colors.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML, as a starting point for a custom theme.

Without an output file the YAML is printed to stdout.

Examples:
  calgrid config theme export default
  calgrid config theme export nord ~/.config/calgrid/themes/mynord.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default palette",
	Long: `Create <name>.yaml in the themes directory with the default palette.
The theme is picked up the next time calgrid starts.

Example:
  calgrid config theme create solarized`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd, themeExportCmd, themeInfoCmd, themePathCmd, themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// resolveTheme discovers custom themes and checks that name is one of the
// available themes. A custom theme that failed to load is reported with its
// load error.
func resolveTheme(name string) (styles.ThemeName, error) {
	_, loadErrs := styles.DiscoverCustomThemes()
	if styles.IsValidTheme(name) {
		return styles.ThemeName(name), nil
	}
	for _, err := range loadErrs {
		msg := err.Error()
		if strings.HasPrefix(msg, name+".yaml:") || strings.HasPrefix(msg, name+".yml:") {
			return "", fmt.Errorf("theme '%s' exists but failed to load: %v", name, err)
		}
	}
	return "", fmt.Errorf("unknown theme: %s\nRun 'calgrid config theme list' to see available themes.\nCustom themes go in: %s",
		name, styles.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, loadErrs := styles.DiscoverCustomThemes()
	for _, err := range loadErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if custom := styles.CustomThemeNames(); len(custom) > 0 {
		slices.Sort(custom)
		fmt.Fprintln(out, "\nCustom themes:")
		for _, name := range custom {
			line := "  - " + name
			if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil && theme.Author != "" {
				line += " (by " + theme.Author + ")"
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(out, "\nCustom themes directory: %s\n", styles.ThemesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name, err := resolveTheme(args[0])
	if err != nil {
		return err
	}

	data, err := styles.ExportTheme(name)
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) < 2 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fmt.Errorf("writing to %s: %w", args[1], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", args[1])
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name, err := resolveTheme(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Theme: %s\n", name)
	if styles.IsBuiltinTheme(string(name)) {
		fmt.Fprintln(out, "Type: built-in")
	} else {
		fmt.Fprintln(out, "Type: custom")
		if theme := styles.GetCustomTheme(name); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	p := styles.GetPalette(name)
	printColors(out, "Base colors", []namedColor{
		{"Primary", p.Primary}, {"Secondary", p.Secondary}, {"Warning", p.Warning}, {"Error", p.Error},
		{"Muted", p.Muted}, {"Surface", p.Surface}, {"Text", p.Text}, {"Border", p.Border},
	})
	printColors(out, "Calendar colors", []namedColor{
		{"Today", p.Today}, {"Weekend", p.Weekend}, {"Holiday", p.Holiday}, {"All-day", p.AllDay},
	})
	return nil
}

type namedColor struct {
	name  string
	color lipgloss.Color
}

// printColors prints one line per color with a swatch in that color.
func printColors(w io.Writer, title string, colors []namedColor) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, c := range colors {
		swatch := lipgloss.NewStyle().Foreground(c.color).Render("██")
		fmt.Fprintf(w, "  %-10s %s %s\n", c.name+":", swatch, c.color)
	}
}

func runThemePath(cmd *cobra.Command, args []string) error {
	dir := styles.ThemesDir()
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "\nThis directory does not exist yet. 'calgrid config theme create' creates it.")
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	switch {
	case name == "":
		return fmt.Errorf("theme name cannot be empty")
	case strings.ContainsAny(name, "/\\:*?\"<>|"):
		return fmt.Errorf("theme name contains invalid characters")
	case styles.IsBuiltinTheme(name):
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	path := filepath.Join(styles.ThemesDir(), name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, path)
	}

	theme := styles.PaletteToThemeFile(name, styles.DefaultPalette())
	theme.Name = capitalizeFirst(name)
	theme.Description = "A custom calgrid theme"
	if err := styles.SaveTheme(name, theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n", path)
	fmt.Fprintf(out, "Edit its colors, then activate it with:\n  calgrid config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst upper-cases the first byte of s.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
