package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/fseq/internal/display"
	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/planner"
)

// NewDirCommand creates the 'fseq dir' command group
func NewDirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Operate on whole directories",
		Long: `Operate on every file of one or more directories.

Files named <dir>.<NNNN>.<ext> form the plain sequence of a directory and
files named <dir>.<tag>.<NNNN>.<ext> form its tagged sequence. Anything
else that sorts into a sequence by the tag rule is a stray file and is
pulled into that sequence.`,
	}

	cmd.AddCommand(newDirOperationCommand(planner.KindConsolidate,
		"Close gaps in the numbering and absorb stray files",
		`Move the highest-numbered files down into the lowest gaps, then number
stray files after the last numbered file.

Examples:
  fseq dir consolidate ~/pictures/holiday
  fseq --noop --tag raw dir consolidate shots/a shots/b`))

	cmd.AddCommand(newDirOperationCommand(planner.KindNumByAge,
		"Renumber files from oldest to newest",
		`Renumber each sequence 1, 2, 3, ... in order of modification time.
Run consolidate first so every file has a number.

Examples:
  fseq dir num-by-age ~/pictures/holiday`,
		"reorder-by-age"))

	return cmd
}

func newDirOperationCommand(kind planner.Kind, short, long string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     kind.String() + " <dir>...",
		Aliases: aliases,
		Short:   short,
		Long:    long,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, kind, args)
		},
	}
}

// runOperation executes kind on every target named on the command line.
func runOperation(cmd *cobra.Command, kind planner.Kind, targets []string) error {
	cfg, home, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, cfg, home)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext(cmd)
	defer stop()

	var summaries []models.RunSummary
	if kind.IsDirOperation() {
		summaries, err = s.runner.RunDirs(ctx, kind, targets)
	} else {
		summaries, err = s.runner.RunFiles(ctx, kind, targets)
	}
	if w := display.IncompleteRuns(summaries); w != nil {
		w.Display(cmd.ErrOrStderr())
	}
	return err
}
