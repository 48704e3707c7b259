package reconcile

import "context"

// Discipline selects how a batch of mutations is executed.
type Discipline int

const (
	// Independent isolates each item: one failure never blocks the others.
	// Used for inventory updates, where SKUs are unrelated.
	Independent Discipline = iota
	// Sequential issues mutations in order and stops at the first error.
	// Used for fulfillments and captures, where partial state matters more
	// than throughput.
	Sequential
)

// String returns the discipline name used in logs and run history.
func (d Discipline) String() string {
	switch d {
	case Independent:
		return "independent"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Op is the kind of remote write a mutation performs.
type Op string

const (
	// OpUpdate changes fields of an existing resource.
	OpUpdate Op = "update"
	// OpCreate creates a sub-resource under a parent (fulfillment, transaction).
	OpCreate Op = "create"
)

// Mutation is a single planned write against the remote platform.
// It is only constructed when at least one field differs from the current
// snapshot, or when a grouped feed operation resolved to a target.
type Mutation struct {
	// Op is the write kind.
	Op Op `json:"op"`

	// Resource is the remote resource kind (e.g. "variants", "fulfillments").
	Resource string `json:"resource"`

	// TargetID is the platform ID to update (OpUpdate) or the parent ID to
	// create under (OpCreate).
	TargetID int64 `json:"target_id"`

	// Fields holds the payload to send.
	Fields map[string]any `json:"fields"`

	// Key is the business key the mutation was derived from, for reporting.
	Key string `json:"key"`
}

// Failure pairs a mutation with the error its remote call returned.
type Failure struct {
	Mutation Mutation
	Err      error
}

// ApplyResult reports the outcome of a batch.
type ApplyResult struct {
	// Succeeded holds mutations whose remote call returned without error.
	Succeeded []Mutation

	// Failed holds mutations whose remote call failed.
	Failed []Failure

	// Skipped holds mutations never attempted because a sequential batch
	// stopped early.
	Skipped []Mutation
}

// OK reports whether every mutation succeeded.
func (r ApplyResult) OK() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// AllAttempted reports whether every mutation was issued, successfully or not.
func (r ApplyResult) AllAttempted() bool {
	return len(r.Skipped) == 0
}

// Warning is a recovered, per-item problem: a lookup miss or a validation gap.
// Warnings are logged and counted; they never abort a batch.
type Warning struct {
	// Key is the business or group key concerned.
	Key string

	// Err is ErrLookupMiss, ErrValidationGap or a wrapped variant.
	Err error
}

// Error renders the warning for logs.
func (w Warning) Error() string {
	if w.Key == "" {
		return w.Err.Error()
	}
	return w.Key + ": " + w.Err.Error()
}

// Report summarizes a task run for logs, notifications and run history.
type Report struct {
	// Files is the number of feed files processed.
	Files int `json:"files"`

	// Rows is the number of feed rows read.
	Rows int `json:"rows"`

	// Mutations is the number of planned mutations.
	Mutations int `json:"mutations"`

	// Succeeded counts mutations that succeeded.
	Succeeded int `json:"succeeded"`

	// Failed counts mutations (or rows under strict policies) that failed.
	Failed int `json:"failed"`

	// Skipped counts mutations never attempted.
	Skipped int `json:"skipped"`

	// Warnings counts recovered lookup misses and validation gaps.
	Warnings int `json:"warnings"`

	// Exported counts records written by an export task.
	Exported int `json:"exported"`

	// DeleteFailed counts processed feeds that could not be removed and will
	// be read again by the next run.
	DeleteFailed int `json:"delete_failed"`
}

// Add folds an apply result into the report.
func (r *Report) Add(res ApplyResult) {
	r.Mutations += len(res.Succeeded) + len(res.Failed) + len(res.Skipped)
	r.Succeeded += len(res.Succeeded)
	r.Failed += len(res.Failed)
	r.Skipped += len(res.Skipped)
}

// Throttle is consulted immediately before every remote call.
// *ratelimit.Limiter satisfies it.
type Throttle interface {
	Wait(ctx context.Context) error
}

func wait(ctx context.Context, t Throttle) error {
	if t == nil {
		return nil
	}
	return t.Wait(ctx)
}
