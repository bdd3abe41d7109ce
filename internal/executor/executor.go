package executor

import (
	"context"
	"fmt"

	"github.com/harrison/fseq/internal/models"
)

// Logger receives executor events.
type Logger interface {
	LogAction(action models.RenameAction)
	LogError(message string)
}

// Executor applies move plans one rename at a time.
type Executor struct {
	fs      FS
	logger  Logger
	verbose bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithFS replaces the real filesystem.
func WithFS(fsys FS) Option {
	return func(e *Executor) {
		e.fs = fsys
	}
}

// WithLogger sets the logger that reports actions and failures.
func WithLogger(logger Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithVerbose reports every action, not only in dry runs.
func WithVerbose(verbose bool) Option {
	return func(e *Executor) {
		e.verbose = verbose
	}
}

// New creates an Executor on the real filesystem.
func New(opts ...Option) *Executor {
	e := &Executor{fs: OSFS{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report is the result of executing one plan.
type Report struct {
	DryRun      bool
	Total       int
	Outcomes    []models.Outcome
	Interrupted bool
}

// Failures counts the actions that were skipped or failed.
func (r *Report) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Applied counts the renames actually performed.
func (r *Report) Applied() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == models.OutcomeApplied {
			n++
		}
	}
	return n
}

// Err returns an *ExecutionError describing every failure, or nil when the
// plan ran to completion without any.
func (r *Report) Err() error {
	if r.Failures() == 0 && !r.Interrupted {
		return nil
	}

	execErr := &ExecutionError{Total: r.Total, Interrupted: r.Interrupted}
	for _, o := range r.Outcomes {
		if !o.Failed() {
			continue
		}
		var ae *ActionError
		if e, ok := o.Err.(*ActionError); ok {
			ae = e
		} else {
			ae = NewActionError(o.Seq, o.Action, KindIO, o.Err)
		}
		execErr.Add(ae)
	}
	return execErr
}

// Execute runs plan in order. In a dry run every action is only reported.
// Otherwise an action whose destination exists is skipped as a collision, a
// failed rename is recorded as an I/O error, and execution carries on with
// the next action either way. Cancelling ctx stops execution between actions.
func (e *Executor) Execute(ctx context.Context, plan []models.RenameAction, dryRun bool) *Report {
	report := &Report{
		DryRun:   dryRun,
		Total:    len(plan),
		Outcomes: make([]models.Outcome, 0, len(plan)),
	}

	for i, action := range plan {
		if ctx.Err() != nil {
			report.Interrupted = true
			e.logError(fmt.Sprintf("stopped before %s: %v", action, ctx.Err()))
			break
		}

		if dryRun || e.verbose {
			e.logAction(action)
		}

		outcome := models.Outcome{Seq: i + 1, Action: action}
		if dryRun {
			outcome.Status = models.OutcomeDryRun
		} else {
			outcome = e.apply(outcome)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}

func (e *Executor) apply(outcome models.Outcome) models.Outcome {
	action := outcome.Action

	exists, err := e.fs.Exists(action.Dest)
	if err != nil {
		outcome.Status = models.OutcomeIOError
		outcome.Err = NewActionError(outcome.Seq, action, KindIO, err)
		e.logError(outcome.Err.Error())
		return outcome
	}
	if exists {
		outcome.Status = models.OutcomeCollision
		outcome.Err = NewActionError(outcome.Seq, action, KindCollision, fmt.Errorf("%s: %w", action.Dest, ErrCollision))
		e.logError(fmt.Sprintf("%s exists", action.Dest))
		return outcome
	}

	if err := e.fs.Rename(action.Src, action.Dest); err != nil {
		outcome.Status = models.OutcomeIOError
		outcome.Err = NewActionError(outcome.Seq, action, KindIO, err)
		e.logError(err.Error())
		return outcome
	}

	outcome.Status = models.OutcomeApplied
	return outcome
}

func (e *Executor) logAction(action models.RenameAction) {
	if e.logger != nil {
		e.logger.LogAction(action)
	}
}

func (e *Executor) logError(message string) {
	if e.logger != nil {
		e.logger.LogError(message)
	}
}
