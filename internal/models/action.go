package models

import "fmt"

// RenameAction moves the file at Src to Dest.
type RenameAction struct {
	Src  string
	Dest string
}

// String renders the action the way it is shown to the user.
func (a RenameAction) String() string {
	return fmt.Sprintf("%s -> %s", a.Src, a.Dest)
}

// IsNoop reports whether the action would rename a file onto itself.
func (a RenameAction) IsNoop() bool {
	return a.Src == a.Dest
}

// Plan is an ordered, collision-safe sequence of rename actions as produced
// by the scheduler. A raw action set from a planner is a plain
// []RenameAction with no ordering guarantee.
type Plan []RenameAction
