package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"small maxLen returns ellipsis", "hello", 3, "..."},
		{"negative maxLen returns ellipsis", "hello", -1, "..."},
		{"multibyte counted as runes", "Grüße aus Köln", 8, "Grüße..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"short plain string unchanged", "hello", 10, "hello"},
		{"plain string truncated", "hello world", 8, "hello..."},
		{"small maxWidth returns ellipsis", "hello", 3, "..."},
		{"styled string kept when it fits", red.Render("hi"), 10, red.Render("hi")},
		{"empty string unchanged", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateANSI(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("TruncateANSI(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}

	t.Run("wide characters counted by visual width", func(t *testing.T) {
		if w := lipgloss.Width(TruncateANSI("日本語テスト", 8)); w > 8 {
			t.Errorf("result width %d exceeds 8", w)
		}
	})
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"pads short text", "14", 5, "14   "},
		{"exact width unchanged", "Review", 6, "Review"},
		{"cuts with one-column ellipsis", "Sprint review", 8, "Sprint …"},
		{"zero width is empty", "x", 0, ""},
		{"empty text is padding", "", 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.input, tt.width); got != tt.want {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}

	t.Run("styled text keeps exact width", func(t *testing.T) {
		bold := lipgloss.NewStyle().Bold(true).Render("Offsite in Berlin")
		for _, width := range []int{1, 5, 10, 30} {
			if got := ansi.StringWidth(Fit(bold, width)); got != width {
				t.Errorf("Fit(styled, %d) has width %d", width, got)
			}
		}
	})

	t.Run("wide characters", func(t *testing.T) {
		if got := ansi.StringWidth(Fit("日本語テスト", 7)); got != 7 {
			t.Errorf("width %d, want 7", got)
		}
	})
}

func TestCenter(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"Mo", 6, "  Mo  "},
		{"Mon", 6, " Mon  "},
		{"February 2024", 5, "Febr…"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Center(tt.input, tt.width); got != tt.want {
				t.Errorf("Center(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
