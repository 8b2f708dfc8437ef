//go:build integration

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Iron-Ham/calgrid/internal/testutil"
	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestConfig writes a config file pointing at a single agenda file and
// returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()

	_, paths := testutil.AgendaDir(t, map[string]string{
		"work.yaml": `entries:
  - id: review
    title: Sprint review
    start: 2024-02-09 14:00
  - title: Offsite
    start: 2024-02-19
    end: 2024-02-21
    location: Lake house
    tags: [travel]
`,
	})

	dir := t.TempDir()
	cfg := "agenda:\n  files:\n    - " + paths[0] + "\n  watch: false\nlogging:\n  enabled: false\n"
	return testutil.WriteFile(t, dir, "config.yaml", cfg)
}

func TestMonthCommand(t *testing.T) {
	cfgFile := setupTestConfig(t)

	out, err := executeCommand(rootCmd, "--config", cfgFile, "month", "2024-02")
	if err != nil {
		t.Fatalf("month failed: %v\n%s", err, out)
	}

	for _, want := range []string{"Mon", "Sun", "Wk", "14:00 Sprint", "Offsite"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMonthCommand_InvalidMonth(t *testing.T) {
	cfgFile := setupTestConfig(t)

	if _, err := executeCommand(rootCmd, "--config", cfgFile, "month", "February"); err == nil {
		t.Error("month with an invalid argument should fail")
	}
}

func TestEventsCommand(t *testing.T) {
	cfgFile := setupTestConfig(t)

	out, err := executeCommand(rootCmd, "--config", cfgFile, "events", "--from", "2024-02-15", "--to", "2024-02-29")
	if err != nil {
		t.Fatalf("events failed: %v\n%s", err, out)
	}

	if strings.Contains(out, "Sprint review") {
		t.Errorf("entry outside the range was listed:\n%s", out)
	}
	if !strings.Contains(out, "2024-02-19 – 2024-02-21") || !strings.Contains(out, "@ Lake house [travel]") {
		t.Errorf("unexpected events output:\n%s", out)
	}
}
