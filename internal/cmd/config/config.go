// Package config provides CLI commands for managing calgrid configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	appconfig "github.com/Iron-Ham/calgrid/internal/config"
	"github.com/Iron-Ham/calgrid/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify calgrid configuration",
	Long: `View or modify calgrid configuration.

Without arguments, shows the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  calgrid config set calendar.first_day_of_week sunday
  calgrid config set calendar.rows 5
  calgrid config set agenda.files ~/agenda/work.yaml,~/agenda/home.yaml

Valid keys:
  calendar.first_day_of_week  - Weekday of the first column (monday, sunday, ...)
  calendar.week_rule          - Week 1 rule
                                Options: first_day, first_four_day_week, first_full_week
  calendar.rows               - Week rows in the grid (1-12)
  calendar.show_week_numbers  - Show the week-number gutter (true/false)
  calendar.wheel_lines        - Weeks scrolled per wheel notch
  holidays.region             - Built-in holiday set (none, nrw)
  holidays.file               - YAML file with additional holidays
  agenda.files                - Comma-separated agenda files
  agenda.include              - Comma-separated glob patterns to keep
  agenda.exclude              - Comma-separated glob patterns to hide
  agenda.watch                - Reload agenda files on change (true/false)
  agenda.max_parallel_loads   - Agenda files parsed at once
  tui.theme                   - Color theme
  tui.theme_file              - Theme YAML file loaded at startup
  tui.cell_width              - Day cell width for 'calgrid month'
  tui.item_lines              - Agenda lines per day for 'calgrid month'
  logging.enabled             - Write calgrid.log (true/false)
  logging.level               - Log level: debug, info, warn, error
  logging.dir                 - Log directory
  logging.max_size_mb         - Log size before rotation
  logging.max_backups         - Rotated logs to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/calgrid/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  calgrid config reset                # Reset all to defaults
  calgrid config reset calendar.rows  # Reset only calendar.rows to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyTypes maps every settable key to the kind of value it takes.
var keyTypes = map[string]string{
	"calendar.first_day_of_week": "weekday",
	"calendar.week_rule":         "week_rule",
	"calendar.rows":              "int",
	"calendar.show_week_numbers": "bool",
	"calendar.wheel_lines":       "int",
	"holidays.region":            "region",
	"holidays.file":              "string",
	"agenda.files":               "list",
	"agenda.include":             "list",
	"agenda.exclude":             "list",
	"agenda.watch":               "bool",
	"agenda.max_parallel_loads":  "int",
	"tui.theme":                  "theme",
	"tui.theme_file":             "string",
	"tui.cell_width":             "int",
	"tui.item_lines":             "int",
	"logging.enabled":            "bool",
	"logging.level":              "log_level",
	"logging.dir":                "string",
	"logging.max_size_mb":        "int",
	"logging.max_backups":        "int",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "calendar:")
	fmt.Fprintf(out, "  first_day_of_week: %s\n", cfg.Calendar.FirstDayOfWeek)
	fmt.Fprintf(out, "  week_rule: %s\n", cfg.Calendar.WeekRule)
	fmt.Fprintf(out, "  rows: %d\n", cfg.Calendar.Rows)
	fmt.Fprintf(out, "  show_week_numbers: %v\n", cfg.Calendar.ShowWeekNumbers)
	fmt.Fprintf(out, "  wheel_lines: %d\n", cfg.Calendar.WheelLines)

	fmt.Fprintln(out, "holidays:")
	fmt.Fprintf(out, "  region: %s\n", cfg.Holidays.Region)
	fmt.Fprintf(out, "  file: %s\n", cfg.Holidays.File)

	fmt.Fprintln(out, "agenda:")
	fmt.Fprintf(out, "  files: %s\n", strings.Join(cfg.Agenda.Files, ", "))
	fmt.Fprintf(out, "  include: %s\n", strings.Join(cfg.Agenda.Include, ", "))
	fmt.Fprintf(out, "  exclude: %s\n", strings.Join(cfg.Agenda.Exclude, ", "))
	fmt.Fprintf(out, "  watch: %v\n", cfg.Agenda.Watch)
	fmt.Fprintf(out, "  max_parallel_loads: %d\n", cfg.Agenda.MaxParallelLoads)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  theme_file: %s\n", cfg.TUI.ThemeFile)
	fmt.Fprintf(out, "  cell_width: %d\n", cfg.TUI.CellWidth)
	fmt.Fprintf(out, "  item_lines: %d\n", cfg.TUI.ItemLines)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.LogDir())
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

// parseValue checks value against the type of key and converts it.
func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'calgrid config set --help' to see valid keys", key)
	}

	switch keyType {
	case "weekday":
		if _, ok := calendar.ParseWeekday(value); !ok {
			return nil, fmt.Errorf("invalid value for %s: %s is not a weekday", key, value)
		}
		return strings.ToLower(value), nil
	case "week_rule":
		if _, err := calendar.ParseWeekRule(value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(calendar.ValidWeekRules(), ", "))
		}
		return value, nil
	case "region":
		if !slices.Contains(calendar.Regions(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(calendar.Regions(), ", "))
		}
		return value, nil
	case "log_level":
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return value, nil
	case "theme":
		// Discover custom themes first
		_, _ = styles.DiscoverCustomThemes()
		if !styles.IsValidTheme(value) {
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s",
				value, strings.Join(styles.ValidThemes(), ", "))
		}
		return value, nil
	case "list":
		var items []string
		for item := range strings.SplitSeq(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return intVal, nil
	}
	return value, nil
}

// targetFile is the file set and reset write to: the file in use, or the
// default location.
func targetFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return appconfig.ConfigFile()
}

func writeConfig() (string, error) {
	configFile := targetFile()
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)

	// Range checks live in the validator
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

// configTemplate is written by 'config init'.
const configTemplate = `# calgrid configuration

# Calendar system and grid
calendar:
  # Weekday shown in the first column
  first_day_of_week: monday
  # Which week is week 1: first_day, first_four_day_week (ISO 8601), first_full_week
  week_rule: first_four_day_week
  # Number of week rows in the grid
  rows: 6
  # Show the week-number gutter left of the grid
  show_week_numbers: true
  # Weeks scrolled per mouse wheel notch
  wheel_lines: 1

# Holidays marked in the grid
holidays:
  # Built-in set: none or nrw
  region: none
  # Optional YAML file with additional holidays
  # file: ~/.config/calgrid/holidays.yaml

# Agenda entries shown as items
agenda:
  # YAML agenda files
  files: []
  # Keep only entries whose title or a tag matches one of these globs
  include: []
  # Hide entries whose title or a tag matches one of these globs
  exclude: []
  # Reload agenda files when they change on disk
  watch: true
  # Files parsed at once
  max_parallel_loads: 4

# TUI (terminal user interface) settings
tui:
  # Color theme: default, dracula, nord, ... or a custom theme name
  theme: default
  # Day cell size used by 'calgrid month'
  cell_width: 14
  item_lines: 3

# Debug logging
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  # Rotate calgrid.log at this size
  max_size_mb: 10
  max_backups: 3
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'calgrid config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize calgrid.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/calgrid/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CALGRID_* (e.g., CALGRID_CALENDAR_ROWS)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	// Find an editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"calendar.first_day_of_week": d.Calendar.FirstDayOfWeek,
		"calendar.week_rule":         d.Calendar.WeekRule,
		"calendar.rows":              d.Calendar.Rows,
		"calendar.show_week_numbers": d.Calendar.ShowWeekNumbers,
		"calendar.wheel_lines":       d.Calendar.WheelLines,
		"holidays.region":            d.Holidays.Region,
		"holidays.file":              d.Holidays.File,
		"agenda.files":               d.Agenda.Files,
		"agenda.include":             d.Agenda.Include,
		"agenda.exclude":             d.Agenda.Exclude,
		"agenda.watch":               d.Agenda.Watch,
		"agenda.max_parallel_loads":  d.Agenda.MaxParallelLoads,
		"tui.theme":                  d.TUI.Theme,
		"tui.theme_file":             d.TUI.ThemeFile,
		"tui.cell_width":             d.TUI.CellWidth,
		"tui.item_lines":             d.TUI.ItemLines,
		"logging.enabled":            d.Logging.Enabled,
		"logging.level":              d.Logging.Level,
		"logging.dir":                d.Logging.Dir,
		"logging.max_size_mb":        d.Logging.MaxSizeMB,
		"logging.max_backups":        d.Logging.MaxBackups,
	}
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		keys := make([]string, 0, len(defaults))
		for key := range defaults {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			viper.Set(key, defaults[key])
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'calgrid config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
