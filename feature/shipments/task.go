package shipments

import (
	"context"
	"fmt"

	"shopify-sync/core/commerce"
	"shopify-sync/core/feed"
	"shopify-sync/core/pipeline"
	"shopify-sync/core/reconcile"

	"go.uber.org/zap"
)

// Task creates fulfillments from warehouse shipment feeds.
type Task struct {
	cfg      Config
	schema   feed.Schema
	carriers Carriers
	deps     pipeline.Deps
}

// NewTask creates the shipment task with the built-in carrier table.
func NewTask(cfg Config, deps pipeline.Deps) (*Task, error) {
	schema, err := Schema().Override(cfg.Columns)
	if err != nil {
		return nil, err
	}
	carriers, err := DefaultCarriers()
	if err != nil {
		return nil, err
	}
	return &Task{cfg: cfg, schema: schema, carriers: carriers, deps: deps}, nil
}

// Run implements pipeline.Task.
func (t *Task) Run(ctx context.Context, discipline reconcile.Discipline) (*reconcile.Report, error) {
	log := t.deps.Log().With(zap.String("stage", pipeline.StageShipments))
	report := &reconcile.Report{}

	files, err := feed.LoadDirectory(ctx, t.deps.Files, t.cfg.Dir, t.schema, t.deps.Fanout)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		log.Info("No shipment feeds", zap.String("dir", t.cfg.Dir))
		return report, nil
	}

	orders, err := commerce.FetchAll(ctx, commerce.Collection[commerce.Order]{
		API:      t.deps.API,
		Resource: commerce.Orders,
		Filter:   commerce.Filter{"status": "open"},
		Fields:   "id,name,line_items",
	}, t.deps.PageSize, t.deps.Throttle)
	if err != nil {
		return report, fmt.Errorf("enumerate open orders: %w", err)
	}
	index := commerce.IndexOrders(orders)
	log.Info("Open order index built", zap.Int("orders", index.Len()))

	for i, f := range files {
		if t.processFile(ctx, log.With(zap.String("file", f.Path)), f, index, discipline, report) {
			continue
		}
		// A failed batch under the sequential discipline halts the stage.
		if rest := files[i+1:]; len(rest) > 0 {
			log.Warn("Shipment feeds deferred after a failed batch", zap.Int("files", len(rest)))
		}
		break
	}
	return report, nil
}

// processFile reports whether the remaining feeds may still be applied.
func (t *Task) processFile(ctx context.Context, log *zap.Logger, f feed.File, index *reconcile.Index[commerce.Order], discipline reconcile.Discipline, report *reconcile.Report) bool {
	report.Files++
	if f.Err != nil {
		report.Failed++
		log.Error("Shipment feed rejected", zap.Error(f.Err))
		return true
	}

	report.Rows += len(f.Rows) + len(f.Warnings)
	report.Warnings += len(f.Warnings)
	for _, w := range f.Warnings {
		log.Warn("Shipment row dropped", zap.Error(w))
	}

	plan := Plan(f.Rows, index, t.carriers, t.cfg.NotifyCustomer)
	report.Warnings += len(plan.Warnings)
	for _, w := range plan.Warnings {
		log.Warn("Shipment skipped", zap.String("po", w.Key), zap.Error(w.Err))
	}
	report.Failed += len(plan.Rejected)
	for _, r := range plan.Rejected {
		log.Error("Shipment rejected", zap.String("po", r.Key), zap.Error(r.Err))
	}

	result := reconcile.Apply(ctx, plan.Mutations, reconcile.ApplyOptions{
		Discipline: discipline,
		Workers:    t.deps.Workers,
		Throttle:   t.deps.Throttle,
	}, t.apply)
	report.Add(result)

	for _, fail := range result.Failed {
		log.Error("Fulfillment failed",
			zap.String("po", fail.Mutation.Key),
			zap.Int64("order_id", fail.Mutation.TargetID),
			zap.Error(fail.Err),
		)
	}

	log.Info("Shipment feed applied",
		zap.Int("fulfillments", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.Skipped)),
	)

	proceed := discipline != reconcile.Sequential || result.OK()
	if !result.AllAttempted() {
		log.Warn("Shipment feed kept, not every fulfillment was attempted")
		return proceed
	}
	if err := t.deps.Files.Delete(ctx, f.Path); err != nil {
		report.DeleteFailed++
		log.Error("Failed to delete processed shipment feed", zap.Error(err))
	}
	return proceed
}

func (t *Task) apply(ctx context.Context, m reconcile.Mutation) error {
	return t.deps.API.Create(ctx, commerce.Fulfillments, m.TargetID, m.Fields, nil)
}
