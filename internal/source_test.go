package internal

import (
	"bytes"
	"go/format"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/calgrid/internal/testutil"
)

// moduleRoot walks up from the working directory to the directory holding go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above the working directory")
		}
		dir = parent
	}
}

// TestSourcesAreFormatted fails for every Go file under internal/ and cmd/
// that gofmt would rewrite. Fix with: gofmt -w ./internal ./cmd
func TestSourcesAreFormatted(t *testing.T) {
	root := moduleRoot(t)

	var unformatted []string
	for _, top := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, top), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".go" {
				return nil
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			formatted, err := format.Source(src)
			if err != nil {
				t.Errorf("%s does not parse: %v", path, err)
				return nil
			}
			if !bytes.Equal(src, formatted) {
				rel, _ := filepath.Rel(root, path)
				unformatted = append(unformatted, rel)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walking %s: %v", top, err)
		}
	}

	if len(unformatted) > 0 {
		t.Errorf("gofmt would rewrite:\n  %s", strings.Join(unformatted, "\n  "))
	}
}

// TestLint runs golangci-lint over the module when it is installed.
func TestLint(t *testing.T) {
	testutil.SkipIfNoGolangciLint(t)
	if testing.Short() {
		t.Skip("lint is slow; skipped in -short mode")
	}

	cmd := exec.Command("golangci-lint", "run", "--allow-parallel-runners", "./...")
	cmd.Dir = moduleRoot(t)
	// A private build cache keeps sandboxed runners from failing on a read-only GOCACHE.
	cmd.Env = append(os.Environ(), "GOCACHE="+t.TempDir())
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Errorf("golangci-lint: %v\n%s", err, out)
	}
}
