package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
)

// Config represents the complete calgrid configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Holidays HolidayConfig  `mapstructure:"holidays"`
	Agenda   AgendaConfig   `mapstructure:"agenda"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CalendarConfig controls the calendar system and the month grid
type CalendarConfig struct {
	// FirstDayOfWeek is the weekday shown in the first column (default: "monday")
	FirstDayOfWeek string `mapstructure:"first_day_of_week"`
	// WeekRule decides which week is week 1 of a year.
	// Options: "first_day", "first_four_day_week", "first_full_week"
	WeekRule string `mapstructure:"week_rule"`
	// Rows is the number of week rows in the grid (default: 6)
	Rows int `mapstructure:"rows"`
	// ShowWeekNumbers shows the week-number gutter (default: true)
	ShowWeekNumbers bool `mapstructure:"show_week_numbers"`
	// WheelLines is the number of weeks one wheel notch scrolls (default: 1)
	WheelLines int `mapstructure:"wheel_lines"`
}

// HolidayConfig controls which holidays are marked in the grid
type HolidayConfig struct {
	// Region selects a built-in holiday set: "none" or "nrw" (default: "none")
	Region string `mapstructure:"region"`
	// File is an optional YAML file with additional holidays.
	// Supports ~ for home directory expansion.
	File string `mapstructure:"file"`
}

// AgendaConfig controls the agenda sources shown as items in the grid
type AgendaConfig struct {
	// Files lists YAML agenda files. Supports ~ for home directory expansion.
	Files []string `mapstructure:"files"`
	// Include keeps only entries whose title or a tag matches one of the
	// glob patterns. Empty means everything.
	Include []string `mapstructure:"include"`
	// Exclude hides entries whose title or a tag matches one of the patterns
	Exclude []string `mapstructure:"exclude"`
	// Watch reloads agenda files when they change on disk (default: true)
	Watch bool `mapstructure:"watch"`
	// MaxParallelLoads bounds how many files are parsed at once (default: 4)
	MaxParallelLoads int `mapstructure:"max_parallel_loads"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "monokai", "dracula", "nord", ... or a custom theme name
	Theme string `mapstructure:"theme"`
	// ThemeFile is an optional theme YAML file loaded and activated at startup
	ThemeFile string `mapstructure:"theme_file"`
	// CellWidth is the preferred width of one day cell in columns (default: 14)
	CellWidth int `mapstructure:"cell_width"`
	// ItemLines is the number of agenda lines shown per day cell (default: 3)
	ItemLines int `mapstructure:"item_lines"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for calgrid.log. Empty means the config directory.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			FirstDayOfWeek:  "monday",
			WeekRule:        calendar.FirstFourDayWeek.String(),
			Rows:            layout.DefaultRows,
			ShowWeekNumbers: true,
			WheelLines:      layout.DefaultWheelLines,
		},
		Holidays: HolidayConfig{
			Region: "none",
		},
		Agenda: AgendaConfig{
			Files:            []string{},
			Include:          []string{},
			Exclude:          []string{},
			Watch:            true,
			MaxParallelLoads: 4,
		},
		TUI: TUIConfig{
			Theme:     "default",
			CellWidth: 14,
			ItemLines: 3,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Calendar defaults
	viper.SetDefault("calendar.first_day_of_week", defaults.Calendar.FirstDayOfWeek)
	viper.SetDefault("calendar.week_rule", defaults.Calendar.WeekRule)
	viper.SetDefault("calendar.rows", defaults.Calendar.Rows)
	viper.SetDefault("calendar.show_week_numbers", defaults.Calendar.ShowWeekNumbers)
	viper.SetDefault("calendar.wheel_lines", defaults.Calendar.WheelLines)

	// Holiday defaults
	viper.SetDefault("holidays.region", defaults.Holidays.Region)
	viper.SetDefault("holidays.file", defaults.Holidays.File)

	// Agenda defaults
	viper.SetDefault("agenda.files", defaults.Agenda.Files)
	viper.SetDefault("agenda.include", defaults.Agenda.Include)
	viper.SetDefault("agenda.exclude", defaults.Agenda.Exclude)
	viper.SetDefault("agenda.watch", defaults.Agenda.Watch)
	viper.SetDefault("agenda.max_parallel_loads", defaults.Agenda.MaxParallelLoads)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.cell_width", defaults.TUI.CellWidth)
	viper.SetDefault("tui.item_lines", defaults.TUI.ItemLines)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())
	viper.AddConfigPath(".")

	// Environment variable settings
	viper.SetEnvPrefix("CALGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "calgrid")
	}
	// Fall back to ~/.config/calgrid
	home, err := os.UserHomeDir()
	if err != nil {
		return ".calgrid"
	}
	return filepath.Join(home, ".config", "calgrid")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// LogDir resolves the directory log files are written to.
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return ExpandPath(c.Dir)
	}
	return ConfigDir()
}

// AgendaFiles returns the configured agenda files with ~ expanded.
func (c *AgendaConfig) AgendaFiles() []string {
	files := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, ExpandPath(f))
		}
	}
	return files
}
