package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/fseq/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files or directories (optional)
	Suggestion string   // Action to take (optional)
}

var warningColor = color.New(color.FgYellow)

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected target:\n")
		} else {
			b.WriteString("Affected targets:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	warningColor.Fprint(out, b.String())
}

// IncompleteRuns warns about targets whose renames stopped part way, either
// because an action failed or because the run was interrupted. Targets that
// failed before scheduling have no failed actions and are not listed. It
// returns nil when there is nothing to warn about.
func IncompleteRuns(summaries []models.RunSummary) *Warning {
	var files []string
	runID := ""
	for _, s := range summaries {
		if s.Failed == 0 && !s.Interrupted {
			continue
		}
		entry := s.Target
		if s.RunID != "" {
			entry = fmt.Sprintf("%s (run %s)", s.Target, shortID(s.RunID))
			if runID == "" {
				runID = s.RunID
			}
		}
		files = append(files, entry)
	}
	if len(files) == 0 {
		return nil
	}

	title := "1 target did not finish cleanly"
	if len(files) > 1 {
		title = fmt.Sprintf("%d targets did not finish cleanly", len(files))
	}

	w := &Warning{
		Title:   title,
		Message: "Some renames failed or never ran; files may be left under temporary _ names.",
		Files:   files,
	}
	if runID != "" {
		w.Suggestion = "List the renames still to do with: fseq history show " + shortID(runID)
	} else {
		w.Suggestion = "Check the actions logged above for the renames that did not run."
	}
	return w
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
