package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/config"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/logging"
	"github.com/Iron-Ham/calgrid/internal/tui"
	"github.com/Iron-Ham/calgrid/internal/tui/styles"
)

// runtime holds what the calendar commands build from the configuration.
type runtime struct {
	cfg    *config.Config
	logger *logging.Logger
	bus    *event.Bus
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		// Logging is best-effort; the grid still works without a log file.
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.NopLogger()
	}
	return &runtime{
		cfg:    cfg,
		logger: logger,
		bus:    event.NewBus(event.WithLogger(logger)),
	}, nil
}

func (r *runtime) close() {
	_ = r.logger.Close()
}

// anchorMonth parses an optional YYYY-MM argument, defaulting to the
// current month.
func anchorMonth(args []string) (calendar.Date, error) {
	if len(args) == 0 || args[0] == "" {
		return calendar.DateOf(time.Now()).FirstOfMonth(), nil
	}
	d, err := calendar.ParseMonth(args[0])
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid month %q: expected YYYY-MM", args[0])
	}
	return d, nil
}

// activateTheme registers custom themes and activates the configured one.
func (r *runtime) activateTheme() (*styles.ThemedStyles, error) {
	if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
		for _, err := range errs {
			r.logger.Warn("custom theme failed to load", "error", err)
		}
	}

	name := styles.ThemeName(r.cfg.TUI.Theme)
	if r.cfg.TUI.ThemeFile != "" {
		registered, err := styles.RegisterThemeFile(config.ExpandPath(r.cfg.TUI.ThemeFile))
		if err != nil {
			return nil, fmt.Errorf("tui.theme_file: %w", err)
		}
		name = registered
	}
	if !styles.IsValidTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme %q\nRun 'calgrid config theme list' to see available themes", name)
	}
	styles.SetActiveTheme(name)
	return styles.GetActiveTheme(), nil
}

// newGrid builds a grid anchored at start and an agenda store that realizes
// its items into it.
func (r *runtime) newGrid(start calendar.Date) (*tui.Grid, *agenda.Store, error) {
	st, err := r.activateTheme()
	if err != nil {
		return nil, nil, err
	}
	holidays, err := r.cfg.Holidays.HolidayProvider()
	if err != nil {
		return nil, nil, err
	}

	lc := r.cfg.LayoutConfig()
	lc.Holidays = holidays
	lc.Bus = r.bus
	lc.Logger = r.logger

	grid := tui.NewGrid(start, lc, st)
	store, err := r.newStore(agenda.WithContainers(grid.Containers()))
	if err != nil {
		return nil, nil, err
	}
	grid.Attach(store)
	return grid, store, nil
}

func (r *runtime) newStore(extra ...agenda.Option) (*agenda.Store, error) {
	filter, err := agenda.NewFilter(r.cfg.Agenda.Include, r.cfg.Agenda.Exclude)
	if err != nil {
		return nil, err
	}
	opts := []agenda.Option{
		agenda.WithFilter(filter),
		agenda.WithMaxParallel(r.cfg.Agenda.MaxParallelLoads),
		agenda.WithBus(r.bus),
		agenda.WithLogger(r.logger),
	}
	return agenda.NewStore(r.cfg.Agenda.AgendaFiles(), append(opts, extra...)...), nil
}
