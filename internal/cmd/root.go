package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for fseq
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fseq",
		Short: "Keep numbered file sequences tidy",
		Long: `fseq manages directories of numbered files named after their directory,
such as holiday/holiday.0001.jpg.

It closes gaps in a sequence, pulls stray files into it, renumbers files
by age, and moves single files between the plain and the tagged sequence.
Renames are ordered so that no file is ever overwritten; swaps and longer
cycles go through a temporary name.

Configuration is loaded from $FSEQ_HOME/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the final error itself
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringP("tag", "t", "", "Tag literal that marks the second sequence (default: raw)")
	flags.BoolP("noop", "n", false, "Print the renames without performing them")
	flags.BoolP("verbose", "v", false, "Print every rename as it is performed")
	flags.String("config", "", "Path to config file (default: $FSEQ_HOME/config.yaml)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Also write a run log into this directory")

	cmd.AddCommand(NewDirCommand())
	cmd.AddCommand(NewFileCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
