package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/calgrid/internal/tui/styles"
	"github.com/spf13/cobra"
)

const testThemeYAML = `name: "Harbor"
author: "Jo"
version: "1"
colors:
  primary: "#A78BFA"
  secondary: "#10B981"
  warning: "#F59E0B"
  error: "#F87171"
  muted: "#9CA3AF"
  surface: "#1F2937"
  text: "#F9FAFB"
  border: "#6B7280"
  calendar:
    today: "#22D3EE"
`

// useThemesDir points the themes directory at a fresh temp dir.
func useThemesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := styles.SetThemesDirFunc(func() string { return dir })
	styles.ClearCustomThemes()
	t.Cleanup(func() {
		styles.SetThemesDirFunc(prev)
		styles.ClearCustomThemes()
	})
	return dir
}

// run calls fn with cmd writing into a buffer.
func run(t *testing.T, cmd *cobra.Command, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	err := fn(cmd, args)
	return out.String(), err
}

func TestRunThemeList(t *testing.T) {
	dir := useThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "harbor.yaml"), []byte(testThemeYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, themeListCmd, runThemeList)
	if err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	for _, want := range []string{"  - default", "  - harbor (by Jo)", "Warning: broken.yaml:", dir} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunThemeExport(t *testing.T) {
	useThemesDir(t)

	out, err := run(t, themeExportCmd, runThemeExport, "dracula")
	if err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out, "primary:") || !strings.Contains(out, "today:") {
		t.Errorf("exported YAML lacks colors:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "exported.yaml")
	if _, err := run(t, themeExportCmd, runThemeExport, "default", path); err != nil {
		t.Fatalf("runThemeExport() to file error = %v", err)
	}
	if _, err := styles.LoadThemeFile(path); err != nil {
		t.Errorf("exported file does not load: %v", err)
	}
}

func TestResolveTheme(t *testing.T) {
	dir := useThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		wantErr string
	}{
		{"nord", ""},
		{"broken", "exists but failed to load"},
		{"missing", "unknown theme: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTheme(tt.name)
			if tt.wantErr == "" {
				if err != nil || string(got) != tt.name {
					t.Errorf("resolveTheme() = %q, %v", got, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("resolveTheme() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunThemeInfo(t *testing.T) {
	dir := useThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "harbor.yaml"), []byte(testThemeYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, themeInfoCmd, runThemeInfo, "harbor")
	if err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	for _, want := range []string{"Type: custom", "Author: Jo", "Calendar colors:", "#22D3EE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, themeInfoCmd, runThemeInfo, "nonexistent"); err == nil {
		t.Error("runThemeInfo() should fail for an unknown theme")
	}
}

func TestRunThemePath(t *testing.T) {
	dir := useThemesDir(t)

	out, err := run(t, themePathCmd, runThemePath)
	if err != nil {
		t.Fatalf("runThemePath() error = %v", err)
	}
	if !strings.HasPrefix(out, dir+"\n") {
		t.Errorf("output = %q, want it to start with %s", out, dir)
	}
}

func TestRunThemeCreate(t *testing.T) {
	dir := useThemesDir(t)

	if _, err := run(t, themeCreateCmd, runThemeCreate, "solarized"); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}
	theme, err := styles.LoadThemeFile(filepath.Join(dir, "solarized.yaml"))
	if err != nil {
		t.Fatalf("created theme is invalid: %v", err)
	}
	if theme.Name != "Solarized" || theme.Colors.Calendar.Today == "" {
		t.Errorf("created theme = %+v", theme)
	}

	if _, err := run(t, themeCreateCmd, runThemeCreate, "solarized"); err == nil {
		t.Error("runThemeCreate() should refuse an existing theme")
	}
}

func TestRunThemeCreate_InvalidName(t *testing.T) {
	useThemesDir(t)

	tests := []struct {
		name    string
		wantErr string
	}{
		{"", "empty"},
		{"my/theme", "invalid characters"},
		{"my\\theme", "invalid characters"},
		{"default", "built-in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, themeCreateCmd, runThemeCreate, tt.name)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("runThemeCreate(%q) error = %v, want %q", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello", "Hello"},
		{"HELLO", "HELLO"},
		{"h", "H"},
		{"", ""},
		{"myTheme", "MyTheme"},
	}

	for _, tt := range tests {
		if got := capitalizeFirst(tt.input); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
