package models

// Outcome status constants recorded for each executed action
const (
	OutcomeDryRun    = "dry_run"   // Action reported only
	OutcomeApplied   = "applied"   // Rename performed
	OutcomeCollision = "collision" // Destination existed, action skipped
	OutcomeIOError   = "io_error"  // Rename syscall failed
)

// Outcome records what happened to one action of a plan.
type Outcome struct {
	Seq    int          // Position in the plan, starting at 1
	Action RenameAction // The scheduled action
	Status string       // One of the Outcome* constants
	Err    error        // Set for collision and io_error
}

// Failed reports whether the outcome counts as a failure.
func (o Outcome) Failed() bool {
	return o.Status == OutcomeCollision || o.Status == OutcomeIOError
}
