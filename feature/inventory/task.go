package inventory

import (
	"context"
	"errors"
	"fmt"

	"shopify-sync/core/commerce"
	"shopify-sync/core/feed"
	"shopify-sync/core/pipeline"
	"shopify-sync/core/reconcile"

	"go.uber.org/zap"
)

// Task syncs warehouse inventory feeds into variant quantities and prices.
type Task struct {
	cfg    Config
	schema feed.Schema
	strict bool
	deps   pipeline.Deps
}

// NewTask creates the inventory task. When strict is set, an unmapped key
// counts as a failed row instead of a warning.
func NewTask(cfg Config, strict bool, deps pipeline.Deps) (*Task, error) {
	schema, err := Schema().Override(cfg.Columns)
	if err != nil {
		return nil, err
	}
	return &Task{cfg: cfg, schema: schema, strict: strict, deps: deps}, nil
}

// Run implements pipeline.Task.
//
// The variant index is built once, then every feed is planned and applied.
// A feed is deleted once all of its mutations were attempted.
func (t *Task) Run(ctx context.Context, discipline reconcile.Discipline) (*reconcile.Report, error) {
	log := t.deps.Log().With(zap.String("stage", pipeline.StageInventory))
	report := &reconcile.Report{}

	files, err := feed.LoadDirectory(ctx, t.deps.Files, t.cfg.Dir, t.schema, t.deps.Fanout)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		log.Info("No inventory feeds", zap.String("dir", t.cfg.Dir))
		return report, nil
	}

	products, err := commerce.FetchAll(ctx, commerce.Collection[commerce.Product]{
		API:      t.deps.API,
		Resource: commerce.Products,
		Fields:   "id,variants",
	}, t.deps.PageSize, t.deps.Throttle)
	if err != nil {
		return report, fmt.Errorf("enumerate catalog: %w", err)
	}

	index := BuildIndex(products, t.cfg)
	log.Info("Variant index built",
		zap.Int("products", len(products)),
		zap.Int("keys", index.Len()),
	)
	if dups := index.Duplicates(); len(dups) > 0 {
		log.Warn("Duplicate variant keys, last one wins", zap.Strings("keys", dups))
	}

	for _, f := range files {
		t.processFile(ctx, log.With(zap.String("file", f.Path)), f, index, discipline, report)
	}
	return report, nil
}

func (t *Task) processFile(ctx context.Context, log *zap.Logger, f feed.File, index *reconcile.Index[Entry], discipline reconcile.Discipline, report *reconcile.Report) {
	report.Files++
	if f.Err != nil {
		report.Failed++
		log.Error("Inventory feed rejected", zap.Error(f.Err))
		return
	}

	report.Rows += len(f.Rows) + len(f.Warnings)
	for _, w := range f.Warnings {
		report.Warnings++
		log.Warn("Inventory row dropped", zap.Error(w))
	}

	plan := Plan(f.Rows, index)
	for _, w := range plan.Warnings {
		if t.strict && errors.Is(w.Err, reconcile.ErrLookupMiss) {
			report.Failed++
			log.Error("Inventory key not mapped", zap.String("key", w.Key))
			continue
		}
		report.Warnings++
		log.Warn("Inventory row skipped", zap.String("key", w.Key), zap.Error(w.Err))
	}

	result := reconcile.Apply(ctx, plan.Mutations, reconcile.ApplyOptions{
		Discipline: discipline,
		Workers:    t.deps.Workers,
		Throttle:   t.deps.Throttle,
	}, t.apply)
	report.Add(result)

	for _, fail := range result.Failed {
		log.Error("Variant update failed",
			zap.String("key", fail.Mutation.Key),
			zap.Int64("variant_id", fail.Mutation.TargetID),
			zap.Error(fail.Err),
		)
	}

	log.Info("Inventory feed applied",
		zap.Int("rows", len(f.Rows)),
		zap.Int("unchanged", plan.Unchanged),
		zap.Int("updated", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)

	if !result.AllAttempted() {
		log.Warn("Inventory feed kept, not every update was attempted", zap.Int("skipped", len(result.Skipped)))
		return
	}
	if err := t.deps.Files.Delete(ctx, f.Path); err != nil {
		report.DeleteFailed++
		log.Error("Failed to delete processed inventory feed", zap.Error(err))
	}
}

func (t *Task) apply(ctx context.Context, m reconcile.Mutation) error {
	return t.deps.API.Update(ctx, commerce.Variants, m.TargetID, m.Fields, nil)
}
