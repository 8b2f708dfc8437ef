package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/calgrid/internal/config"
	"github.com/Iron-Ham/calgrid/internal/layout"
	"github.com/Iron-Ham/calgrid/internal/tui"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Print one month of the calendar",
	Long: `Print the realized grid of a single month to stdout.

The cell size comes from tui.cell_width and tui.item_lines. Use --fit to
size the grid to the terminal instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

var monthFit bool

func init() {
	monthCmd.Flags().BoolVar(&monthFit, "fit", false, "size the grid to the terminal")
}

func runMonth(cmd *cobra.Command, args []string) error {
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
	if err := store.Reload(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	width, height := monthSize(rt.cfg)
	if monthFit {
		if w, h, ok := tui.TerminalSize(); ok {
			width, height = w, h
		}
	}

	out, err := grid.Render(width, height)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// monthSize returns the render size that gives every day cell
// tui.cell_width columns and tui.item_lines agenda lines.
func monthSize(cfg *config.Config) (width, height int) {
	width = 7 * cfg.TUI.CellWidth
	if cfg.Calendar.ShowWeekNumbers {
		width += layout.DefaultGutterWidth
	}
	height = layout.HeaderHeight + cfg.Calendar.Rows*(1+cfg.TUI.ItemLines*layout.DefaultItemHeight)
	return width, height
}
