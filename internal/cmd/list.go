package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harrison/exchange/internal/config"
	"github.com/harrison/exchange/internal/display"
	"github.com/harrison/exchange/internal/exchange"
	"github.com/harrison/exchange/internal/filelock"
	"github.com/harrison/exchange/internal/history"
	"github.com/harrison/exchange/internal/logger"
	"github.com/harrison/exchange/internal/models"
	"github.com/spf13/cobra"
)

// removeAll deletes one matched directory tree during a remove run.
var removeAll = os.RemoveAll

// NewListCommand creates the 'exchange list' command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [assignment-id]",
		Short: "List or remove assignments in the exchange",
		Long: `List released (outbound) or submitted (inbound) assignments in the
exchange, optionally removing every listed directory.

The assignment id may be given as the only argument or with --assignment;
"*" or no argument lists every assignment.

Configuration is loaded from $EXCHANGE_HOME/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Released assignments for the configured course
  exchange list

  # Released assignments for one course
  exchange list --course phys101

  # Submitted assignments
  exchange list --inbound

  # One student's submissions of one assignment, every resubmission included
  exchange list --inbound --student=student1 --assignment=assignment1

  # Remove a student's submissions
  exchange list --inbound --remove --student=student1

  # Tree view and machine-readable export
  exchange list --inbound --tree --output submissions.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}

	cmd.Flags().Bool("inbound", false, "List inbound (submitted) assignments rather than outbound (released)")
	cmd.Flags().Bool("remove", false, "Remove, rather than only list, the matched assignments")
	cmd.Flags().String("course", "", "Course id filter (default: course_id from config)")
	cmd.Flags().String("student", "", "Student id filter (inbound only)")
	cmd.Flags().String("assignment", "", "Assignment id filter")
	cmd.Flags().String("exchange", "", "Exchange directory (default: exchange_directory from config)")
	cmd.Flags().String("config", "", "Path to config file (default: $EXCHANGE_HOME/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("tree", false, "Also print the processed assignments as a tree")
	cmd.Flags().String("output", "", "Write processed assignments to a .json, .yaml or .yml file")
	cmd.Flags().Bool("no-history", false, "Do not record removals in the history database")

	return cmd
}

// runList implements the list command logic
func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exchangeFlag, _ := cmd.Flags().GetString("exchange")
	courseFlag, _ := cmd.Flags().GetString("course")
	logLevelFlag, _ := cmd.Flags().GetString("log-level")
	logDirFlag, _ := cmd.Flags().GetString("log-dir")
	noHistoryFlag, _ := cmd.Flags().GetBool("no-history")

	// Build flag pointers for merge (only values set on the command line)
	var exchangePtr, coursePtr, logLevelPtr, logDirPtr *string
	var noHistoryPtr *bool
	if cmd.Flags().Changed("exchange") {
		exchangePtr = &exchangeFlag
	}
	if cmd.Flags().Changed("course") {
		coursePtr = &courseFlag
	}
	if cmd.Flags().Changed("log-level") {
		logLevelPtr = &logLevelFlag
	}
	if cmd.Flags().Changed("log-dir") {
		logDirPtr = &logDirFlag
	}
	if cmd.Flags().Changed("no-history") {
		noHistoryPtr = &noHistoryFlag
	}
	cfg.MergeWithFlags(exchangePtr, coursePtr, logLevelPtr, logDirPtr, noHistoryPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	assignmentFlag, _ := cmd.Flags().GetString("assignment")
	assignmentID, err := resolveAssignment(args, assignmentFlag)
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.ExchangeDirectory)
	if err != nil {
		return fmt.Errorf("exchange directory %s: %w", cfg.ExchangeDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exchange directory %s is not a directory", cfg.ExchangeDirectory)
	}

	inbound, _ := cmd.Flags().GetBool("inbound")
	remove, _ := cmd.Flags().GetBool("remove")
	studentID, _ := cmd.Flags().GetString("student")

	direction := models.Outbound
	if inbound {
		direction = models.Inbound
	}
	query := exchange.Query{
		Root:      cfg.ExchangeDirectory,
		Direction: direction,
		Filter: models.Filter{
			CourseID:     wildcardToEmpty(cfg.CourseID),
			AssignmentID: assignmentID,
			StudentID:    wildcardToEmpty(studentID),
		},
	}
	if err := query.Validate(); err != nil {
		return err
	}

	runID := uuid.New().String()
	commandName := "list"
	if remove {
		commandName = "remove"
	}

	runLogger, closeLog, err := newRunLogger(cmd, cfg, commandName, runID)
	if err != nil {
		return err
	}
	defer closeLog()

	var action exchange.Action
	if remove {
		lockPath, err := config.GetRemoveLockPath()
		if err != nil {
			return err
		}
		lock, err := filelock.TryAcquire(lockPath)
		if errors.Is(err, filelock.ErrLocked) {
			return fmt.Errorf("another remove run is in progress (lock %s)", lockPath)
		}
		if err != nil {
			return err
		}
		defer lock.Unlock()

		var recorder exchange.Recorder
		if cfg.History.Enabled {
			dbPath, err := cfg.HistoryDBPath()
			if err != nil {
				return err
			}
			store, err := history.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open removal history: %w", err)
			}
			defer store.Close()
			recorder = store
		}
		action = exchange.NewRemoveAction(runLogger, recorder, runID).WithRemoveFunc(removeAll)
	} else {
		action = exchange.NewListAction(runLogger)
	}

	runLogger.LogDebug(fmt.Sprintf("run %s: pattern %s", runID, query.Pattern()))

	result, runErr := exchange.NewLister(query, action, runLogger).Run(cmd.Context())
	if runErr != nil {
		if len(result.Removed) > 0 {
			display.PartialRemovalWarning(runErr, entryPaths(result.Removed)).Display(cmd.ErrOrStderr())
		}
		runLogger.LogError(runErr.Error())
		return runErr
	}

	if remove {
		runLogger.LogDebug(fmt.Sprintf("run %s: removed %d of %d matched directories", runID, len(result.Removed), len(result.Entries)))
	}

	if tree, _ := cmd.Flags().GetBool("tree"); tree {
		fmt.Fprint(cmd.OutOrStdout(), display.RenderTree(cfg.ExchangeDirectory, result.Entries))
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := display.WriteEntries(output, result.Entries); err != nil {
			return err
		}
		runLogger.LogInfo(fmt.Sprintf("Wrote %d assignment(s) to %s", len(result.Entries), output))
	}

	return nil
}

// newRunLogger builds the console logger, plus a file logger when a log
// directory is configured. The returned func closes the file logger.
func newRunLogger(cmd *cobra.Command, cfg *config.Config, command, runID string) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLogger, err := logger.NewFileLogger(cfg.LogDir, command, runID, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	console.LogDebug(fmt.Sprintf("run log: %s", fileLogger.Path()))
	return logger.NewTee(console, fileLogger), func() { fileLogger.Close() }, nil
}

// resolveAssignment combines the optional positional argument with the
// --assignment flag. "*" means no filter.
func resolveAssignment(args []string, flagValue string) (string, error) {
	positional := ""
	if len(args) == 1 {
		positional = wildcardToEmpty(args[0])
	}
	flagValue = wildcardToEmpty(flagValue)

	if positional != "" && flagValue != "" && positional != flagValue {
		return "", fmt.Errorf("conflicting assignment ids: argument %q and --assignment %q", positional, flagValue)
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return positional, nil
}

func wildcardToEmpty(id string) string {
	if id == "*" {
		return ""
	}
	return id
}

func entryPaths(entries []models.Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}
