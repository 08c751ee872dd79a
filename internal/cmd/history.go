package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harrison/exchange/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'exchange history' command
func NewHistoryCommand() *cobra.Command {
	var limit int
	var courseID string
	var runID string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show assignments removed from the exchange",
		Long: `Show directories deleted by 'exchange list --remove', newest first.

Examples:
  # Last 20 removals
  exchange history

  # Every removal for one course
  exchange history --course phys101 --limit 0

  # Everything one remove run deleted
  exchange history --run 0b6f1c2e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, history.Query{CourseID: courseID, RunID: runID, Limit: limit}, dbPath)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of removals to show (0 = all)")
	cmd.Flags().StringVar(&courseID, "course", "", "Only show removals for this course")
	cmd.Flags().StringVar(&runID, "run", "", "Only show removals from this run id")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (default: from config)")
	cmd.Flags().String("config", "", "Path to config file (default: $EXCHANGE_HOME/config.yaml)")

	return cmd
}

// runHistory executes the history command
func runHistory(cmd *cobra.Command, query history.Query, dbPathOverride string) error {
	output := cmd.OutOrStdout()

	if query.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", query.Limit)
	}

	dbPath := dbPathOverride
	if dbPath == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err = cfg.HistoryDBPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No removal history found at: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open removal history: %w", err)
	}
	defer store.Close()

	removals, err := store.ListRemovals(cmd.Context(), query)
	if err != nil {
		return err
	}

	if len(removals) == 0 {
		fmt.Fprintf(output, "No removals recorded.\n")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REMOVED AT\tRUN\tDIRECTION\tASSIGNMENT")
	for _, r := range removals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.RemovedAt.Local().Format("2006-01-02 15:04:05"),
			shortRunID(r.RunID),
			r.Direction,
			r.Entry().Line(),
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	total, err := store.CountRemovals(cmd.Context())
	if err != nil {
		return err
	}

	recordText := "removal"
	if len(removals) != 1 {
		recordText = "removals"
	}
	fmt.Fprintf(output, "\n%d %s shown, %d recorded in total.\n", len(removals), recordText, total)

	return nil
}

// shortRunID trims a UUID run id to its first group for display.
func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
