package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shopify-sync/core/logger"
	"shopify-sync/core/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage names, in execution order.
const (
	StageInventory = "inventory"
	StageOrders    = "orders"
	StageShipments = "shipments"
	StagePayments  = "payments"
)

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, s Summary) error
}

// Budget is the remote call budget shared by the stages of a run.
// *ratelimit.Limiter satisfies it.
type Budget interface {
	Reset()
}

// Options configures an Orchestrator. Only Stages and Logger are required.
type Options struct {
	Stages   []Stage
	Logger   *zap.Logger
	RunLog   *logger.RunLog
	Notifier notify.Notifier
	Recorder Recorder
	// Budget is reset when a run starts.
	Budget Budget
	// Subject prefixes the report subject.
	Subject string
}

// Orchestrator runs the declared stages in order. A failing stage is
// recorded and the next stage still runs.
type Orchestrator struct {
	opts Options
	mu   sync.Mutex
	now  func() time.Time
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Subject == "" {
		opts.Subject = "shopify-sync"
	}
	return &Orchestrator{opts: opts, now: time.Now}
}

// Stages returns the declared stage names in order.
func (o *Orchestrator) Stages() []string {
	names := make([]string, len(o.opts.Stages))
	for i, s := range o.opts.Stages {
		names[i] = s.Name
	}
	return names
}

// Only returns an orchestrator restricted to the named stages, keeping the
// declared order.
func (o *Orchestrator) Only(names ...string) (*Orchestrator, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var stages []Stage
	for _, s := range o.opts.Stages {
		if want[s.Name] {
			stages = append(stages, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown stage %s", strings.Join(unknown, ", "))
	}

	opts := o.opts
	opts.Stages = stages
	return &Orchestrator{opts: opts, now: o.now}, nil
}

// Run executes every stage once, then flushes the run log to the notifier.
// Runs on the same Orchestrator never overlap.
func (o *Orchestrator) Run(ctx context.Context) Summary {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.opts.Budget != nil {
		o.opts.Budget.Reset()
	}

	summary := Summary{RunID: uuid.NewString(), Started: o.now()}
	log := o.opts.Logger.With(zap.String("run_id", summary.RunID))
	log.Info("Sync run started", zap.Strings("stages", o.Stages()))

	for _, stage := range o.opts.Stages {
		res := o.runStage(ctx, log, stage)
		summary.Stages = append(summary.Stages, res)
	}
	summary.Finished = o.now()

	status := "ok"
	if !summary.OK() {
		status = "failed"
	}
	log.Info("Sync run finished",
		zap.String("status", status),
		zap.Duration("duration", summary.Finished.Sub(summary.Started)),
	)

	if o.opts.Recorder != nil {
		if err := o.opts.Recorder.Record(ctx, summary); err != nil {
			log.Warn("Failed to record run history", zap.Error(err))
		}
	}

	o.flush(ctx, log, summary, status)
	return summary
}

func (o *Orchestrator) runStage(ctx context.Context, log *zap.Logger, stage Stage) (res StageResult) {
	log = log.With(zap.String("stage", stage.Name))
	res = StageResult{
		Name:       stage.Name,
		Discipline: stage.Discipline.String(),
		Started:    o.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("stage panicked: %v", r)
			res.Finished = o.now()
			log.Error("Stage failed", zap.Error(res.Err))
		}
	}()

	log.Info("Stage started", zap.String("discipline", res.Discipline))
	report, err := stage.Task.Run(ctx, stage.Discipline)
	res.Finished = o.now()
	if report != nil {
		res.Report = *report
	}
	res.Err = err

	fields := []zap.Field{
		zap.Int("files", res.Report.Files),
		zap.Int("rows", res.Report.Rows),
		zap.Int("mutations", res.Report.Mutations),
		zap.Int("succeeded", res.Report.Succeeded),
		zap.Int("failed", res.Report.Failed),
		zap.Int("skipped", res.Report.Skipped),
		zap.Int("warnings", res.Report.Warnings),
		zap.Int("exported", res.Report.Exported),
		zap.Int("delete_failed", res.Report.DeleteFailed),
	}
	switch {
	case err != nil:
		log.Error("Stage failed", append(fields, zap.Error(err))...)
	case !res.OK():
		log.Warn("Stage finished with failures", fields...)
	default:
		log.Info("Stage finished", fields...)
	}
	return res
}

// flush drains the run log into one report. A delivery failure is logged
// and never fails the run.
func (o *Orchestrator) flush(ctx context.Context, log *zap.Logger, summary Summary, status string) {
	if o.opts.RunLog == nil {
		return
	}
	body := o.opts.RunLog.Drain()
	if o.opts.Notifier == nil {
		return
	}

	msg := notify.Message{
		RunID:   summary.RunID,
		Subject: fmt.Sprintf("%s run %s", o.opts.Subject, status),
		Body:    body,
	}
	if err := o.opts.Notifier.Notify(ctx, msg); err != nil {
		log.Error("Failed to deliver run report", zap.Error(err))
	}
}
