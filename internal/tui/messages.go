package tui

import (
	"context"
	"time"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	tea "github.com/charmbracelet/bubbletea"
)

// dayChangedMsg is sent by the day watcher at local midnight
type dayChangedMsg struct {
	today calendar.Date
}

// agendaChangedMsg is sent when agenda source files changed on disk
type agendaChangedMsg struct {
	paths []string
}

// agendaLoadedMsg carries freshly read agenda entries, not yet applied to
// the store
type agendaLoadedMsg struct {
	entries []agenda.Entry
	err     error
}

// agendaSavedMsg carries the result of writing a moved entry back
type agendaSavedMsg struct {
	path string
	err  error
}

// clearStatusMsg removes a status message once it has been shown long enough
type clearStatusMsg struct {
	seq int
}

// statusTimeout is how long transient status messages stay on screen.
const statusTimeout = 4 * time.Second

// reloadAgenda reads every agenda source in the background. Update applies
// the entries, so they never change under a running layout pass.
func reloadAgenda(store *agenda.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.Load(context.Background())
		return agendaLoadedMsg{entries: entries, err: err}
	}
}

// saveAgenda writes the entries of one source file back to disk.
func saveAgenda(store *agenda.Store, path string) tea.Cmd {
	return func() tea.Msg {
		return agendaSavedMsg{path: path, err: store.Save(path)}
	}
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
