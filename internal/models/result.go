package models

import "time"

// RunSummary is the aggregate result of one operation on one target
// (a directory, or a single file for the tag operations).
type RunSummary struct {
	RunID       string        // Journal identifier, empty when journaling is off
	Operation   string        // Operation name, e.g. "consolidate"
	Target      string        // Directory or file operated on
	DryRun      bool          // Plan was only reported
	Actions     int           // Number of actions in the scheduled plan
	Temporaries int           // Cycle-breaking temporaries in the plan
	Applied     int           // Renames performed
	Failed      int           // Collisions plus I/O errors
	Interrupted bool          // Execution stopped early
	Duration    time.Duration // Wall time for plan, schedule and execute
	Err         error         // Target-level error (unreadable directory, lock busy), or the aggregate of failed actions
}

// Succeeded reports whether the target finished without any failure.
func (s RunSummary) Succeeded() bool {
	return s.Err == nil && s.Failed == 0 && !s.Interrupted
}
