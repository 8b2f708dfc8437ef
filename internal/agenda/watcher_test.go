package agenda

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/calgrid/internal/testutil"
)

func TestWatcher_ReportsChangedFiles(t *testing.T) {
	dir, paths := testutil.AgendaDir(t, map[string]string{
		"work.yaml": workAgenda,
		"home.yaml": "entries: []\n",
	})
	untracked := testutil.WriteFile(t, dir, "notes.txt", "hello")

	var mu sync.Mutex
	var batches [][]string
	w, err := NewWatcher(paths, func(changed []string) {
		mu.Lock()
		batches = append(batches, changed)
		mu.Unlock()
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	work := filepath.Join(dir, "work.yaml")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(work, []byte(workAgenda), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := os.WriteFile(untracked, []byte("changed"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ok := testutil.Eventually(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) > 0
	})
	if !ok {
		t.Fatal("no change reported")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, batch := range batches {
		for _, name := range batch {
			if filepath.Base(name) != "work.yaml" {
				t.Errorf("unexpected file reported: %s", name)
			}
		}
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	_, paths := testutil.AgendaDir(t, map[string]string{"work.yaml": workAgenda})

	w, err := NewWatcher(paths, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Start()
	w.Stop()
	w.Stop()

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watch loop did not exit")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "work.yaml")
	if _, err := NewWatcher([]string{missing}, nil, nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
