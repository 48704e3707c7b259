package pipeline

import (
	"context"
	"time"

	"shopify-sync/core/reconcile"
)

// Task is one business task of the pipeline.
type Task interface {
	// Run executes the task with the declared batch discipline. A returned
	// error is a stage-level failure; item-level failures are counted in the
	// report.
	Run(ctx context.Context, discipline reconcile.Discipline) (*reconcile.Report, error)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context, discipline reconcile.Discipline) (*reconcile.Report, error)

// Run implements Task.
func (f TaskFunc) Run(ctx context.Context, d reconcile.Discipline) (*reconcile.Report, error) {
	return f(ctx, d)
}

// Stage is a declared pipeline step.
type Stage struct {
	// Name identifies the stage in logs, reports and the CLI.
	Name string

	// Discipline is how the stage's mutation batches run.
	Discipline reconcile.Discipline

	// Task does the work.
	Task Task
}

// StageResult is the outcome of one stage.
type StageResult struct {
	Name       string           `json:"name"`
	Discipline string           `json:"discipline"`
	Report     reconcile.Report `json:"report"`
	Err        error            `json:"-"`
	Started    time.Time        `json:"started"`
	Finished   time.Time        `json:"finished"`
}

// OK reports whether the stage completed, every mutation succeeded and every
// processed feed was removed. Warnings do not fail a stage.
func (r StageResult) OK() bool {
	return r.Err == nil && r.Report.Failed == 0 && r.Report.Skipped == 0 && r.Report.DeleteFailed == 0
}

// Error returns the stage error text, or "".
func (r StageResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Summary is the outcome of one pipeline invocation.
type Summary struct {
	RunID    string        `json:"run_id"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Stages   []StageResult `json:"stages"`
}

// OK reports whether every stage succeeded.
func (s Summary) OK() bool {
	for _, st := range s.Stages {
		if !st.OK() {
			return false
		}
	}
	return true
}
