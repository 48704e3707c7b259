package trigger

import (
	"context"

	"shopify-sync/core/history"
	"shopify-sync/core/pipeline"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner runs the sync pipeline once.
type Runner interface {
	Run(ctx context.Context) pipeline.Summary
}

// History lists recorded runs.
type History interface {
	List(ctx context.Context, limit int) ([]history.SyncRun, error)
}

// Service starts pipeline runs on demand. Concurrent requests share the run
// in progress instead of queueing another one.
type Service struct {
	runner  Runner
	history History
	logger  *zap.Logger
	group   singleflight.Group
}

// NewService creates the trigger service. history may be nil when run
// history is disabled.
func NewService(runner Runner, history History, logger *zap.Logger) *Service {
	return &Service{runner: runner, history: history, logger: logger}
}

// Sync runs the pipeline, or joins the run already in progress. shared is
// true when the summary belongs to a run started by another caller. The run
// is not cancelled when the caller goes away.
func (s *Service) Sync(ctx context.Context) (pipeline.Summary, bool) {
	v, _, shared := s.group.Do("sync", func() (any, error) {
		return s.runner.Run(context.WithoutCancel(ctx)), nil
	})
	return v.(pipeline.Summary), shared
}

// Runs returns the latest recorded runs. ok is false when history is
// disabled.
func (s *Service) Runs(ctx context.Context, limit int) (runs []history.SyncRun, ok bool, err error) {
	if s.history == nil {
		return nil, false, nil
	}
	runs, err = s.history.List(ctx, limit)
	return runs, true, err
}
