package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/fseq/internal/planner"
)

// NewFileCommand creates the 'fseq file' command group
func NewFileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Move single files between the plain and tagged sequence",
		Long: `Move single files between the plain and the tagged sequence of their
directory. The file takes the first free number of the sequence it moves
into and keeps its extension.

Examples:
  fseq file set holiday/holiday.0004.jpg      # -> holiday.raw.0001.jpg
  fseq --tag best file flip holiday/*.jpg`,
	}

	cmd.AddCommand(newFileOperationCommand(planner.KindFlipTag, "Tag untagged files and untag tagged ones"))
	cmd.AddCommand(newFileOperationCommand(planner.KindSetTag, "Move files into the tagged sequence"))
	cmd.AddCommand(newFileOperationCommand(planner.KindUnsetTag, "Move files into the plain sequence"))

	return cmd
}

func newFileOperationCommand(kind planner.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:     kind.String() + " <file>...",
		Aliases: []string{kind.String() + "-tag"},
		Short:   short,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, kind, args)
		},
	}
}
