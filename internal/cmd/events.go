package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/calgrid/internal/agenda"
	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [YYYY-MM]",
	Short: "List agenda entries",
	Long: `List the agenda entries of a month, or of the range given by --from and --to.

Examples:
  calgrid events                      # Entries of the current month
  calgrid events 2024-02              # Entries of February 2024
  calgrid events --from 2024-02-10 --to 2024-02-20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvents,
}

var (
	eventsFrom string
	eventsTo   string
)

func init() {
	eventsCmd.Flags().StringVar(&eventsFrom, "from", "", "first day of the range (YYYY-MM-DD)")
	eventsCmd.Flags().StringVar(&eventsTo, "to", "", "last day of the range (YYYY-MM-DD)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	from, to, err := eventsRange(args, eventsFrom, eventsTo)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	store, err := rt.newStore()
	if err != nil {
		return err
	}
	if len(store.Paths()) == 0 {
		return fmt.Errorf("no agenda files configured\nRun 'calgrid config set agenda.files <path>' to add one")
	}
	if err := store.Reload(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	printEntries(cmd.OutOrStdout(), store.Between(from, to))
	return nil
}

// eventsRange resolves the listed range. --from and --to override the
// month; a missing end is the end of the start's month.
func eventsRange(args []string, fromFlag, toFlag string) (from, to calendar.Date, err error) {
	month, err := anchorMonth(args)
	if err != nil {
		return from, to, err
	}
	from = month
	if fromFlag != "" {
		if from, err = calendar.ParseDate(fromFlag); err != nil {
			return from, to, fmt.Errorf("--from: %w", err)
		}
	}
	to = from.FirstOfMonth().AddMonths(1).AddDays(-1)
	if toFlag != "" {
		if to, err = calendar.ParseDate(toFlag); err != nil {
			return from, to, fmt.Errorf("--to: %w", err)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return from, to, nil
}

func printEntries(w io.Writer, entries []agenda.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No agenda entries.")
		return
	}
	for _, e := range entries {
		when := e.StartDate().String()
		if e.Span() > 1 {
			when += " – " + e.EndDate().String()
		}
		line := fmt.Sprintf("%-23s  %s", when, e.Label())
		if e.Location != "" {
			line += " @ " + e.Location
		}
		if len(e.Tags) > 0 {
			line += " [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}
