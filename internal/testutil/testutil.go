// Package testutil provides testing utilities for calgrid tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
)

// WriteFile writes content to name inside dir, creating parent directories.
// Returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	fullPath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return fullPath
}

// AgendaDir creates a temporary directory holding one agenda file per map
// entry, keyed by file name. Returns the directory and the sorted file paths.
func AgendaDir(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		paths = append(paths, WriteFile(t, dir, name, content))
	}
	slices.Sort(paths)
	return dir, paths
}

// Date is shorthand for calendar.NewDate.
func Date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

// FixedClock returns a Now function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Eventually polls cond until it returns true or timeout passes.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// SkipIfNoGolangciLint skips the test if golangci-lint is not installed.
func SkipIfNoGolangciLint(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("golangci-lint"); err != nil {
		t.Skip("golangci-lint not found in PATH, skipping test")
	}
}
