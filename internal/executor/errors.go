package executor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harrison/fseq/internal/models"
)

// ErrorKind classifies why an action failed.
type ErrorKind int

const (
	// KindCollision means the destination already existed at execution time.
	KindCollision ErrorKind = iota
	// KindIO means the rename itself failed.
	KindIO
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindCollision:
		return "collision"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrCollision is wrapped by every collision ActionError.
var ErrCollision = errors.New("destination exists")

// ActionError represents one action of a plan that was skipped or failed.
type ActionError struct {
	Seq       int                 // Position of the action in the plan, from 1
	Action    models.RenameAction // The action that failed
	Kind      ErrorKind           // Collision or I/O
	Err       error               // Underlying error
	Timestamp time.Time           // When the failure happened
}

// NewActionError creates a new ActionError with the current timestamp.
func NewActionError(seq int, action models.RenameAction, kind ErrorKind, err error) *ActionError {
	return &ActionError{
		Seq:       seq,
		Action:    action,
		Kind:      kind,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for ActionError.
func (e *ActionError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("action %d (%s): %s", e.Seq, e.Action, e.Kind))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *ActionError) Unwrap() error {
	return e.Err
}

// ExecutionError aggregates the failed actions of one plan.
type ExecutionError struct {
	Errors      []*ActionError // Individual action failures, in plan order
	Total       int            // Number of actions in the plan
	Interrupted bool           // Execution stopped before the end of the plan
}

// Add records a failed action.
func (e *ExecutionError) Add(actionErr *ActionError) {
	e.Errors = append(e.Errors, actionErr)
}

// Error implements the error interface for ExecutionError.
func (e *ExecutionError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d/%d actions failed", len(e.Errors), e.Total))
	if e.Interrupted {
		sb.WriteString(" (interrupted)")
	}

	if len(e.Errors) > 0 {
		sb.WriteString(":")
		for _, actionErr := range e.Errors {
			sb.WriteString(fmt.Sprintf("\n  - %s", actionErr.Error()))
		}
	}

	return sb.String()
}

// Unwrap returns the action errors so errors.Is and errors.As can traverse
// them.
func (e *ExecutionError) Unwrap() []error {
	if len(e.Errors) == 0 {
		return nil
	}

	errs := make([]error, len(e.Errors))
	for i, actionErr := range e.Errors {
		errs[i] = actionErr
	}
	return errs
}

// IsCollision checks if the error is or wraps a collision.
func IsCollision(err error) bool {
	return errors.Is(err, ErrCollision)
}

// IsExecutionError checks if the error is or wraps an ExecutionError.
func IsExecutionError(err error) bool {
	if err == nil {
		return false
	}
	var ee *ExecutionError
	return errors.As(err, &ee)
}
