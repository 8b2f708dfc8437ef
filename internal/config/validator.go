package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "calendar.rows")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Limits enforced by Validate.
const (
	MinWheelLines    = 1
	MaxWheelLines    = 6
	MinCellWidth     = 8
	MaxCellWidth     = 40
	MaxItemLines     = 6
	MaxParallelLoads = 16
	maxLogSizeMB     = 1000
	maxPathLength    = 4096
)

// ValidLogLevels returns the accepted logging.level values.
func ValidLogLevels() []string {
	names := logging.ValidLevels()
	for i, name := range names {
		names[i] = strings.ToLower(name)
	}
	return names
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Calendar config
	errors = append(errors, c.validateCalendar()...)

	// Validate Holidays config
	errors = append(errors, c.validateHolidays()...)

	// Validate Agenda config
	errors = append(errors, c.validateAgenda()...)

	// Validate TUI config
	errors = append(errors, c.validateTUI()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateCalendar validates the CalendarConfig
func (c *Config) validateCalendar() []ValidationError {
	var errors []ValidationError

	if _, ok := calendar.ParseWeekday(c.Calendar.FirstDayOfWeek); !ok {
		errors = append(errors, ValidationError{
			Field:   "calendar.first_day_of_week",
			Value:   c.Calendar.FirstDayOfWeek,
			Message: "must be a weekday name such as monday or sunday",
		})
	}

	if _, err := calendar.ParseWeekRule(c.Calendar.WeekRule); err != nil {
		errors = append(errors, ValidationError{
			Field:   "calendar.week_rule",
			Value:   c.Calendar.WeekRule,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(calendar.ValidWeekRules(), ", ")),
		})
	}

	if c.Calendar.Rows < 1 || c.Calendar.Rows > layout.MaxRows {
		errors = append(errors, ValidationError{
			Field:   "calendar.rows",
			Value:   c.Calendar.Rows,
			Message: fmt.Sprintf("must be between 1 and %d", layout.MaxRows),
		})
	}

	if c.Calendar.WheelLines < MinWheelLines || c.Calendar.WheelLines > MaxWheelLines {
		errors = append(errors, ValidationError{
			Field:   "calendar.wheel_lines",
			Value:   c.Calendar.WheelLines,
			Message: fmt.Sprintf("must be between %d and %d", MinWheelLines, MaxWheelLines),
		})
	}

	return errors
}

// validateHolidays validates the HolidayConfig
func (c *Config) validateHolidays() []ValidationError {
	var errors []ValidationError

	region := strings.ToLower(strings.TrimSpace(c.Holidays.Region))
	if region != "" && !slices.Contains(calendar.Regions(), region) {
		errors = append(errors, ValidationError{
			Field:   "holidays.region",
			Value:   c.Holidays.Region,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(calendar.Regions(), ", ")),
		})
	}

	errors = append(errors, validatePath("holidays.file", c.Holidays.File)...)

	return errors
}

// validateAgenda validates the AgendaConfig
func (c *Config) validateAgenda() []ValidationError {
	var errors []ValidationError

	for i, f := range c.Agenda.Files {
		field := fmt.Sprintf("agenda.files[%d]", i)
		if strings.TrimSpace(f) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   f,
				Message: "must not be empty",
			})
			continue
		}
		errors = append(errors, validatePath(field, f)...)
	}

	errors = append(errors, validatePatterns("agenda.include", c.Agenda.Include)...)
	errors = append(errors, validatePatterns("agenda.exclude", c.Agenda.Exclude)...)

	if c.Agenda.MaxParallelLoads < 1 || c.Agenda.MaxParallelLoads > MaxParallelLoads {
		errors = append(errors, ValidationError{
			Field:   "agenda.max_parallel_loads",
			Value:   c.Agenda.MaxParallelLoads,
			Message: fmt.Sprintf("must be between 1 and %d", MaxParallelLoads),
		})
	}

	return errors
}

// validatePatterns compiles each glob pattern the way the agenda filter does.
func validatePatterns(field string, patterns []string) []ValidationError {
	var errors []ValidationError
	for i, p := range patterns {
		if _, err := glob.Compile(strings.ToLower(p)); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   p,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.TUI.Theme) == "" {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "must not be empty",
		})
	}

	errors = append(errors, validatePath("tui.theme_file", c.TUI.ThemeFile)...)

	if c.TUI.CellWidth < MinCellWidth || c.TUI.CellWidth > MaxCellWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.cell_width",
			Value:   c.TUI.CellWidth,
			Message: fmt.Sprintf("must be between %d and %d columns", MinCellWidth, MaxCellWidth),
		})
	}

	if c.TUI.ItemLines < 0 || c.TUI.ItemLines > MaxItemLines {
		errors = append(errors, ValidationError{
			Field:   "tui.item_lines",
			Value:   c.TUI.ItemLines,
			Message: fmt.Sprintf("must be between 0 and %d", MaxItemLines),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	errors = append(errors, validatePath("logging.dir", c.Logging.Dir)...)

	return errors
}

// validatePath checks an optional path for characters and lengths no
// filesystem accepts.
func validatePath(field, path string) []ValidationError {
	if path == "" {
		return nil
	}

	var errors []ValidationError
	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: "path contains invalid null character",
		})
	}
	if len(path) > maxPathLength {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
		})
	}
	return errors
}
