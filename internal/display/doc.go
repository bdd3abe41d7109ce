// Package display formats user-facing warnings for the terminal.
//
// A Warning has a title and optional message, file list and suggestion:
//
//	warning := display.Warning{
//	    Title:      "1 target did not finish cleanly",
//	    Files:      []string{"/photos/holiday"},
//	    Suggestion: "fseq history show 3f2a9c1e",
//	}
//	warning.Display(os.Stderr)
//
// IncompleteRuns builds that warning from the summaries of a run. Output is
// yellow when fatih/color decides the writer is a terminal.
package display
