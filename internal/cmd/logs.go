package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/unlockcalc/internal/config"
	"github.com/Iron-Ham/unlockcalc/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View plugin logs",
	Long: `View and filter the plugin's app.log and its rotated backups.

Examples:
  # Show the last 50 records
  unlockcalc logs

  # Keep printing new records as they are written
  unlockcalc logs -f

  # Warnings and errors from the transport in the last hour
  unlockcalc logs --level warn --component transport --since 1h

  # Everything one plugin instance logged
  unlockcalc logs -s 0b7e... -n 0`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsDir       string
	logsSessionID string
	logsComponent string
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsSince     string
	logsGrep      string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsDir, "dir", "", "log directory (default from logging.dir)")
	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "only records from this plugin instance id")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "only records from this component")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "number of records to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow new records (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "only records newer than this duration (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "only records whose message contains this text")
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := logsDir
	if dir == "" {
		dir = config.Get().Logging.Dir
	}

	filter := logging.Filter{
		SessionID:       logsSessionID,
		Component:       logsComponent,
		MessageContains: logsGrep,
	}
	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.Since = time.Now().Add(-d)
	}

	out := cmd.OutOrStdout()
	entries, err := logging.ReadEntries(dir)
	switch {
	case errors.Is(err, os.ErrNotExist) && !logsFollow:
		fmt.Fprintf(out, "No logs found in %s\n", dir)
		return nil
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	}

	entries = logging.FilterEntries(entries, filter)
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	if len(entries) == 0 && !logsFollow {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	if err := logging.WriteText(out, entries); err != nil {
		return err
	}
	if !logsFollow {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), "Following logs... (Ctrl+C to stop)")
	return logging.Follow(ctx, dir, filter, func(e logging.Entry) {
		_ = logging.WriteText(out, []logging.Entry{e})
	})
}
