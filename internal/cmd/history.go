package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/fseq/internal/journal"
	"github.com/harrison/fseq/internal/models"
)

// NewHistoryCommand creates the 'fseq history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List the runs recorded in the journal, newest first.

Every run that scheduled at least one rename is recorded together with its
plan and the outcome of each rename. Use 'fseq history show <id>' to see
the plan of one run; an interrupted run lists the renames that are still
pending so they can be finished by hand.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().String("dir", "", "Only list runs on this directory or files in it")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the plan and outcome of one run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	})

	return cmd
}

// openJournal opens the configured journal for reading. It returns nil when
// nothing has been recorded yet.
func openJournal(cmd *cobra.Command) (*journal.Store, error) {
	cfg, home, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.JournalPath(home)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil
	}

	store, err := journal.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	store, err := openJournal(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(output, "No runs recorded")
		return nil
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	dir, _ := cmd.Flags().GetString("dir")
	filter := journal.ListFilter{Limit: limit}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve directory: %w", err)
		}
		filter.Target = abs
	}

	runs, err := store.ListRuns(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "No runs recorded")
		return nil
	}

	printRuns(output, runs, colorEnabled(output))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openJournal(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: %s", journal.ErrRunNotFound, args[0])
	}
	defer store.Close()

	run, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	printRun(output, run, colorEnabled(output))
	return nil
}

// colorEnabled reports whether w is a terminal stdout.
func colorEnabled(w io.Writer) bool {
	return w == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())
}

type palette struct {
	header *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	gray   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		gray:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.header, p.green, p.red, p.yellow, p.gray} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// runStatus summarises a run in one word.
func runStatus(run *journal.Run) string {
	switch {
	case run.Interrupted:
		return "interrupted"
	case run.Failures > 0:
		return "failed"
	case run.DryRun:
		return "dry-run"
	default:
		return "applied"
	}
}

func (p palette) status(status string) *color.Color {
	switch status {
	case models.OutcomeApplied:
		return p.green
	case "failed", models.OutcomeCollision, models.OutcomeIOError:
		return p.red
	case "interrupted", journal.StatusPending:
		return p.yellow
	default:
		return p.gray
	}
}

func printRuns(w io.Writer, runs []*journal.Run, colored bool) {
	p := newPalette(colored)

	p.header.Fprintf(w, "%-8s  %-19s  %-11s  %7s  %6s  %-11s  %s\n",
		"ID", "STARTED", "OPERATION", "ACTIONS", "FAILED", "STATUS", "TARGET")
	for _, run := range runs {
		status := runStatus(run)
		fmt.Fprintf(w, "%-8s  %-19s  %-11s  %7d  %6d  ",
			shortID(run.ID), formatTimestamp(run.StartedAt), run.Operation, run.Actions, run.Failures)
		p.status(status).Fprintf(w, "%-11s", status)
		fmt.Fprintf(w, "  %s\n", run.Target)
	}
}

func printRun(w io.Writer, run *journal.Run, colored bool) {
	p := newPalette(colored)
	status := runStatus(run)

	p.header.Fprintf(w, "\n=== Run %s ===\n\n", run.ID)
	fmt.Fprintf(w, "  Operation: %s\n", run.Operation)
	fmt.Fprintf(w, "  Target:    %s\n", run.Target)
	fmt.Fprintf(w, "  Started:   %s\n", formatTimestamp(run.StartedAt))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(w, "  Duration:  %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "  Actions:   %d (%d temporary)\n", run.Actions, run.Temporaries)
	fmt.Fprintf(w, "  Status:    ")
	p.status(status).Fprintf(w, "%s\n", status)

	fmt.Fprintln(w)
	for _, step := range run.Steps {
		fmt.Fprintf(w, "  %4d  ", step.Seq)
		p.status(step.Status).Fprintf(w, "%-9s", step.Status)
		fmt.Fprintf(w, "  %s -> %s", step.Src, step.Dest)
		if step.Error != "" {
			p.red.Fprintf(w, "  (%s)", step.Error)
		}
		fmt.Fprintln(w)
	}

	if pending := run.Pending(); len(pending) > 0 && !run.DryRun {
		fmt.Fprintln(w)
		p.yellow.Fprintf(w, "%d renames were never attempted. To finish the run, perform them in order:\n", len(pending))
		for _, step := range pending {
			fmt.Fprintf(w, "  mv -n -- %q %q\n", step.Src, step.Dest)
		}
	}
	fmt.Fprintln(w)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
