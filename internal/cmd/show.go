package cmd

import (
	"github.com/Iron-Ham/calgrid/internal/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [YYYY-MM]",
	Short: "Open the interactive calendar",
	Long: `Open the scrollable month grid in the terminal.

The grid starts at the given month, or the current month when none is given.
Agenda files from the configuration are loaded in the background and
reloaded when they change on disk (see agenda.watch).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	start, err := anchorMonth(args)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	grid, store, err := rt.newGrid(start)
	if err != nil {
		return err
	}

	rt.logger.Info("starting calendar", "anchor", start.String(), "agenda_files", len(store.Paths()))
	app := tui.New(tui.Options{
		Grid:   grid,
		Store:  store,
		Watch:  rt.cfg.Agenda.Watch,
		Bus:    rt.bus,
		Logger: rt.logger,
	})
	return app.Run()
}
