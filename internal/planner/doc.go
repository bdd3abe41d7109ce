// Package planner turns a classified directory into a raw rename action set.
//
// Planners only decide where each file should end up. They make no promise
// about the order in which the renames can safely run; that is the job of the
// scheduler package, which every raw set flows through before execution.
package planner
