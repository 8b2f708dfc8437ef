package config

import (
	"fmt"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// System returns the calendar system described by the calendar section.
// Unparseable values fall back to ISO; Validate reports them.
func (c *CalendarConfig) System() calendar.System {
	sys := calendar.ISO
	if wd, ok := calendar.ParseWeekday(c.FirstDayOfWeek); ok {
		sys.FirstDayOfWeek = wd
	}
	if rule, err := calendar.ParseWeekRule(c.WeekRule); err == nil {
		sys.Rule = rule
	}
	return sys
}

// LayoutConfig builds the panel configuration. Holidays, clock, bus and
// logger are left for the caller to fill in.
func (c *Config) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.System = c.Calendar.System()
	cfg.Rows = c.Calendar.Rows
	cfg.ShowWeekNumbers = c.Calendar.ShowWeekNumbers
	cfg.WheelLines = c.Calendar.WheelLines
	return cfg
}

// HolidayProvider chains the custom holiday file, if any, in front of the
// built-in region.
func (c *HolidayConfig) HolidayProvider() (calendar.HolidayProvider, error) {
	region, err := calendar.RegionProvider(c.Region)
	if err != nil {
		return nil, err
	}
	if c.File == "" {
		return region, nil
	}
	custom, err := calendar.LoadHolidayFile(ExpandPath(c.File))
	if err != nil {
		return nil, fmt.Errorf("holidays.file: %w", err)
	}
	return calendar.Holidays{custom, region}, nil
}

// NewLogger returns the logger described by the logging section, or a no-op
// logger when logging is disabled.
func (c *LoggingConfig) NewLogger() (*logging.Logger, error) {
	if !c.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLoggerWithRotation(c.LogDir(), c.Level, logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   true,
	})
}
