// Package runner drives one fseq invocation: for every target directory or
// file it plans, schedules and executes the renames, journals the run and
// logs a summary.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/fseq/internal/config"
	"github.com/harrison/fseq/internal/executor"
	"github.com/harrison/fseq/internal/filelock"
	"github.com/harrison/fseq/internal/journal"
	"github.com/harrison/fseq/internal/logger"
	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/planner"
	"github.com/harrison/fseq/internal/scan"
	"github.com/harrison/fseq/internal/scheduler"
)

// RunError reports how many targets of an invocation failed.
type RunError struct {
	Failed int
	Total  int
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("%d of %d targets failed", e.Failed, e.Total)
}

// Runner carries the per-invocation settings shared by all targets.
type Runner struct {
	tag      string
	dryRun   bool
	verbose  bool
	locksDir string

	logger     logger.Logger
	journal    *journal.Store
	classifier *scan.Classifier
	executor   *executor.Executor
	execFS     executor.FS
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithJournal records every target in store.
func WithJournal(store *journal.Store) Option {
	return func(r *Runner) {
		r.journal = store
	}
}

// WithLocksDir enables per-directory locking with lock files in dir.
func WithLocksDir(dir string) Option {
	return func(r *Runner) {
		r.locksDir = dir
	}
}

// WithScanFS reads directories through fsys.
func WithScanFS(fsys scan.FS) Option {
	return func(r *Runner) {
		r.classifier = scan.NewClassifier(fsys)
	}
}

// WithExecFS applies renames through fsys.
func WithExecFS(fsys executor.FS) Option {
	return func(r *Runner) {
		r.execFS = fsys
	}
}

// New builds a Runner from cfg.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		tag:        cfg.Tag,
		dryRun:     cfg.DryRun,
		verbose:    cfg.Verbose,
		logger:     logger.NewNoOpLogger(),
		classifier: scan.NewClassifier(nil),
	}
	for _, opt := range opts {
		opt(r)
	}

	execOpts := []executor.Option{
		executor.WithLogger(r.logger),
		executor.WithVerbose(r.verbose),
	}
	if r.execFS != nil {
		execOpts = append(execOpts, executor.WithFS(r.execFS))
	}
	r.executor = executor.New(execOpts...)

	return r
}

// RunDirs applies a directory operation to each of dirs in turn. A failing
// directory does not stop the others. The returned error is a *RunError when
// any directory failed.
func (r *Runner) RunDirs(ctx context.Context, kind planner.Kind, dirs []string) ([]models.RunSummary, error) {
	plan, err := planner.DirPlanner(kind)
	if err != nil {
		return nil, err
	}

	return r.runAll(ctx, kind, dirs, func(dir string) target {
		return target{
			name:    dir,
			lockDir: dir,
			plan: func() ([]models.RenameAction, error) {
				return plan(r.classifier, dir, r.tag)
			},
		}
	})
}

// RunFiles applies a tag operation to each of files in turn. Each file is
// planned against a fresh classification of its parent directory, so earlier
// files of the same invocation are accounted for.
func (r *Runner) RunFiles(ctx context.Context, kind planner.Kind, files []string) ([]models.RunSummary, error) {
	plan, err := planner.FilePlanner(kind)
	if err != nil {
		return nil, err
	}

	return r.runAll(ctx, kind, files, func(file string) target {
		path := filepath.Clean(file)
		dir := filepath.Dir(path)
		return target{
			name:    file,
			lockDir: dir,
			plan: func() ([]models.RenameAction, error) {
				info, err := r.classifier.Stat(path)
				if err != nil {
					return nil, err
				}
				if info.IsDir() {
					return nil, fmt.Errorf("%s is a directory", file)
				}
				files, err := r.classifier.Classify(dir, r.tag)
				if err != nil {
					return nil, err
				}
				return plan(files, path), nil
			},
		}
	})
}

type target struct {
	name    string
	lockDir string
	plan    func() ([]models.RenameAction, error)
}

func (r *Runner) runAll(ctx context.Context, kind planner.Kind, names []string, build func(string) target) ([]models.RunSummary, error) {
	summaries := make([]models.RunSummary, 0, len(names))
	failed := 0

	for i, name := range names {
		if ctx.Err() != nil {
			r.logger.LogWarn(fmt.Sprintf("stopped: %d targets not processed", len(names)-i))
			failed += len(names) - i
			break
		}

		summary := r.runTarget(ctx, kind, build(name))
		summaries = append(summaries, summary)
		if !summary.Succeeded() {
			failed++
		}
	}

	if failed > 0 {
		return summaries, &RunError{Failed: failed, Total: len(names)}
	}
	return summaries, nil
}

func (r *Runner) runTarget(ctx context.Context, kind planner.Kind, t target) models.RunSummary {
	start := time.Now()
	summary := models.RunSummary{
		Operation: kind.String(),
		Target:    t.name,
		DryRun:    r.dryRun,
	}
	defer func() {
		summary.Duration = time.Since(start)
		r.logger.LogSummary(summary)
	}()

	if r.locksDir != "" && !r.dryRun {
		lock, err := filelock.ForDir(r.locksDir, t.lockDir)
		if err != nil {
			summary.Err = err
			return summary
		}
		if err := lock.TryLock(); err != nil {
			summary.Err = err
			return summary
		}
		defer lock.Unlock()
	}

	raw, err := t.plan()
	if err != nil {
		summary.Err = err
		return summary
	}

	result, err := scheduler.ScheduleWithStats(raw)
	if err != nil {
		summary.Err = fmt.Errorf("schedule: %w", err)
		return summary
	}
	summary.Actions = len(result.Plan)
	summary.Temporaries = result.Temporaries
	r.logger.LogDebug(fmt.Sprintf("%s %s: %d moves planned, %d actions scheduled",
		kind, t.name, len(raw), len(result.Plan)))

	if r.dryRun && r.verbose {
		r.checkPlan(t.lockDir, result.Plan)
	}

	run := r.startJournal(ctx, kind, t.name, result)
	if run != nil {
		summary.RunID = run.ID
	}

	report := r.executor.Execute(ctx, result.Plan, r.dryRun)
	summary.Applied = report.Applied()
	summary.Failed = report.Failures()
	summary.Interrupted = report.Interrupted
	summary.Err = report.Err()

	if run != nil {
		run.SetOutcomes(report.Outcomes)
		run.Interrupted = report.Interrupted
		r.finishJournal(ctx, run)
	}

	return summary
}

// checkPlan replays plan against the current directory listing and warns if
// it would overwrite or lose a file.
func (r *Runner) checkPlan(dir string, plan []models.RenameAction) {
	occupied, err := r.classifier.Files(dir)
	if err != nil {
		r.logger.LogWarn(fmt.Sprintf("cannot validate plan: %v", err))
		return
	}
	if _, err := scheduler.Simulate(occupied, plan); err != nil {
		r.logger.LogWarn(fmt.Sprintf("plan for %s would fail: %v", dir, err))
		return
	}
	r.logger.LogDebug(fmt.Sprintf("plan for %s validated", dir))
}

// startJournal records the plan with every step pending, so a run killed
// mid-way still leaves its plan behind.
func (r *Runner) startJournal(ctx context.Context, kind planner.Kind, name string, result *scheduler.Result) *journal.Run {
	if r.journal == nil || len(result.Plan) == 0 {
		return nil
	}

	target, err := filepath.Abs(name)
	if err != nil {
		target = name
	}

	run := journal.NewRun(kind.String(), target, r.dryRun)
	run.SetPlan(result.Plan, result.Temporaries)
	if err := r.journal.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		r.logger.LogWarn(fmt.Sprintf("journal: %v", err))
		return nil
	}
	return run
}

func (r *Runner) finishJournal(ctx context.Context, run *journal.Run) {
	run.FinishedAt = time.Now()
	if err := r.journal.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		r.logger.LogWarn(fmt.Sprintf("journal: %v", err))
	}
}

// IsRunError reports whether err is a *RunError.
func IsRunError(err error) bool {
	var re *RunError
	return errors.As(err, &re)
}
