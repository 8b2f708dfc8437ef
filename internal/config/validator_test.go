package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "calendar.rows",
		Value:   40,
		Message: "must be between 1 and 12",
	}

	expected := "calendar.rows: must be between 1 and 12 (got: 40)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "unknown weekday",
			modify:    func(c *Config) { c.Calendar.FirstDayOfWeek = "funday" },
			wantField: "calendar.first_day_of_week",
		},
		{
			name:      "unknown week rule",
			modify:    func(c *Config) { c.Calendar.WeekRule = "first_half_week" },
			wantField: "calendar.week_rule",
		},
		{
			name:      "zero rows",
			modify:    func(c *Config) { c.Calendar.Rows = 0 },
			wantField: "calendar.rows",
		},
		{
			name:      "too many rows",
			modify:    func(c *Config) { c.Calendar.Rows = 13 },
			wantField: "calendar.rows",
		},
		{
			name:      "wheel lines too large",
			modify:    func(c *Config) { c.Calendar.WheelLines = 7 },
			wantField: "calendar.wheel_lines",
		},
		{
			name:      "unknown region",
			modify:    func(c *Config) { c.Holidays.Region = "atlantis" },
			wantField: "holidays.region",
		},
		{
			name:      "holiday file with null byte",
			modify:    func(c *Config) { c.Holidays.File = "holi\x00days.yaml" },
			wantField: "holidays.file",
		},
		{
			name:      "blank agenda file",
			modify:    func(c *Config) { c.Agenda.Files = []string{"work.yaml", "  "} },
			wantField: "agenda.files[1]",
		},
		{
			name:      "agenda file path too long",
			modify:    func(c *Config) { c.Agenda.Files = []string{strings.Repeat("a", 5000)} },
			wantField: "agenda.files[0]",
		},
		{
			name:      "invalid include pattern",
			modify:    func(c *Config) { c.Agenda.Include = []string{"ok*", "[broken"} },
			wantField: "agenda.include[1]",
		},
		{
			name:      "invalid exclude pattern",
			modify:    func(c *Config) { c.Agenda.Exclude = []string{"[x"} },
			wantField: "agenda.exclude[0]",
		},
		{
			name:      "no parallel loads",
			modify:    func(c *Config) { c.Agenda.MaxParallelLoads = 0 },
			wantField: "agenda.max_parallel_loads",
		},
		{
			name:      "too many parallel loads",
			modify:    func(c *Config) { c.Agenda.MaxParallelLoads = 17 },
			wantField: "agenda.max_parallel_loads",
		},
		{
			name:      "empty theme",
			modify:    func(c *Config) { c.TUI.Theme = " " },
			wantField: "tui.theme",
		},
		{
			name:      "narrow cells",
			modify:    func(c *Config) { c.TUI.CellWidth = 7 },
			wantField: "tui.cell_width",
		},
		{
			name:      "wide cells",
			modify:    func(c *Config) { c.TUI.CellWidth = 41 },
			wantField: "tui.cell_width",
		},
		{
			name:      "negative item lines",
			modify:    func(c *Config) { c.TUI.ItemLines = -1 },
			wantField: "tui.item_lines",
		},
		{
			name:      "invalid log level",
			modify:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
		{
			name:      "zero log size",
			modify:    func(c *Config) { c.Logging.MaxSizeMB = 0 },
			wantField: "logging.max_size_mb",
		},
		{
			name:      "huge log size",
			modify:    func(c *Config) { c.Logging.MaxSizeMB = 1001 },
			wantField: "logging.max_size_mb",
		},
		{
			name:      "negative backups",
			modify:    func(c *Config) { c.Logging.MaxBackups = -1 },
			wantField: "logging.max_backups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_AcceptedValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"weekday abbreviation", func(c *Config) { c.Calendar.FirstDayOfWeek = "Sun" }},
		{"iso alias", func(c *Config) { c.Calendar.WeekRule = "iso" }},
		{"region case", func(c *Config) { c.Holidays.Region = "NRW" }},
		{"empty region", func(c *Config) { c.Holidays.Region = "" }},
		{"custom theme", func(c *Config) { c.TUI.Theme = "my-theme" }},
		{"no item lines", func(c *Config) { c.TUI.ItemLines = 0 }},
		{"twelve rows", func(c *Config) { c.Calendar.Rows = 12 }},
		{"alternatives", func(c *Config) { c.Agenda.Include = []string{"{standup,review}*"} }},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if errs := cfg.Validate(); len(errs) != 0 {
				t.Errorf("Validate() = %v, want no errors", errs)
			}
		})
	}
}

func TestConfig_Validate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Calendar.Rows = 0
	cfg.TUI.CellWidth = 0
	cfg.Logging.MaxBackups = -3

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}
