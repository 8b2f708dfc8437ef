package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/daywatch"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Options configures an App.
type Options struct {
	Grid  *Grid
	Store *agenda.Store
	// Watch reloads the agenda when a source file changes.
	Watch  bool
	Bus    *event.Bus
	Logger *logging.Logger
}

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	store   *agenda.Store
	watch   bool
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates a new TUI application
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(opts.Grid, opts.Store, logger),
		store:  opts.Store,
		watch:  opts.Watch,
		bus:    opts.Bus,
		logger: logger,
	}
}

// TerminalSize returns the size of the terminal on stdout.
func TerminalSize() (width, height int, ok bool) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// Run starts the TUI application and blocks until it exits. A fatal layout
// error that ended the program is returned.
func (a *App) Run() error {
	if w, h, ok := TerminalSize(); ok {
		a.model.width, a.model.height = w, h
		a.model.help.Width = w
		a.model.ready = true
	}

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	days := &daywatch.Watcher{
		OnDayChange: func(today calendar.Date) {
			a.program.Send(dayChangedMsg{today: today})
		},
		Bus:    a.bus,
		Logger: a.logger,
	}
	days.Start()
	defer days.Stop()

	if a.watch && a.store != nil && len(a.store.Paths()) > 0 {
		w, err := agenda.NewWatcher(a.store.Paths(), func(changed []string) {
			a.program.Send(agendaChangedMsg{paths: changed})
		}, a.logger)
		if err != nil {
			a.logger.Warn("agenda watcher disabled", "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)

	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}
