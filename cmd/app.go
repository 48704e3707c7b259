package cmd

import (
	"fmt"
	"time"

	"shopify-sync/core/commerce"
	"shopify-sync/core/config"
	"shopify-sync/core/cursor"
	"shopify-sync/core/database"
	"shopify-sync/core/history"
	"shopify-sync/core/logger"
	"shopify-sync/core/notify"
	"shopify-sync/core/pipeline"
	"shopify-sync/core/ratelimit"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage"
	"shopify-sync/feature/inventory"
	"shopify-sync/feature/orders"
	"shopify-sync/feature/payments"
	"shopify-sync/feature/shipments"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the collaborators of one invocation. They are built once and
// passed explicitly to every task.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	runLog   *logger.RunLog
	client   storage.Client
	files    *storage.Bucket
	db       *gorm.DB
	api      *commerce.Client
	limiter  *ratelimit.Limiter
	cursors  cursor.Store
	recorder *history.Recorder
}

// newApp loads configuration and connects every collaborator except the
// pipeline itself.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	base, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	runLog := logger.NewRunLog(cfg.Log.ReportLevel)
	logg := runLog.Attach(base)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	files := storage.NewBucket(client, cfg.Storage.Bucket)

	// Database (Optional)
	var db *gorm.DB
	if cfg.Database.Enabled {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			if cfg.Cursor.Driver == cursor.DriverDatabase {
				return nil, fmt.Errorf("database connection required by cursor driver: %w", err)
			}
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	limiter := ratelimit.NewFromConfig(cfg.RateLimit)
	api, err := commerce.NewClient(cfg.Shopify, limiter, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create commerce client: %w", err)
	}

	cursors, err := cursor.New(cfg.Cursor, files, db)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     logg,
		runLog:  runLog,
		client:  client,
		files:   files,
		db:      db,
		api:     api,
		limiter: limiter,
		cursors: cursors,
	}

	if db != nil {
		rec, err := history.NewRecorder(db)
		if err != nil {
			logg.Warn("Run history disabled", zap.Error(err))
		} else {
			a.recorder = rec
		}
	}

	return a, nil
}

// deps returns the task collaborators. The limiter is shared with the client.
func (a *app) deps() pipeline.Deps {
	return pipeline.Deps{
		API:      a.api,
		Files:    a.files,
		Throttle: a.limiter,
		Logger:   a.log,
		PageSize: a.cfg.Sync.PageSize,
		Workers:  a.cfg.Sync.Workers,
		Fanout:   a.cfg.Sync.Fanout,
	}
}

// orchestrator declares the pipeline.
func (a *app) orchestrator() (*pipeline.Orchestrator, error) {
	stages, err := buildStages(a.cfg.Sync, a.cursors, a.deps())
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New(a.cfg.Notify, a.files, a.log)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Stages:   stages,
		Logger:   a.log,
		RunLog:   a.runLog,
		Notifier: notifier,
		Budget:   a.limiter,
		Subject:  a.cfg.Notify.Subject,
	}
	if a.recorder != nil {
		opts.Recorder = a.recorder
	}
	return pipeline.New(opts), nil
}

// buildStages declares the stage list in execution order. Inventory and the
// order export touch unrelated records; shipments and payments stop at the
// first failed call.
func buildStages(cfg config.Sync, cursors cursor.Store, deps pipeline.Deps) ([]pipeline.Stage, error) {
	inv, err := inventory.NewTask(cfg.Inventory, cfg.StrictKeys, deps)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	exp, err := orders.NewTask(cfg.Orders, cursors, deps)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	ship, err := shipments.NewTask(cfg.Shipments, deps)
	if err != nil {
		return nil, fmt.Errorf("shipments: %w", err)
	}
	pay, err := payments.NewTask(cfg.Payments, deps)
	if err != nil {
		return nil, fmt.Errorf("payments: %w", err)
	}

	return []pipeline.Stage{
		{Name: pipeline.StageInventory, Discipline: reconcile.Independent, Task: inv},
		{Name: pipeline.StageOrders, Discipline: reconcile.Independent, Task: exp},
		{Name: pipeline.StageShipments, Discipline: reconcile.Sequential, Task: ship},
		{Name: pipeline.StagePayments, Discipline: reconcile.Sequential, Task: pay},
	}, nil
}

// close releases the database connection and flushes the logger.
func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.log.Sync()
}

// every returns the configured interval unless the flag overrides it.
func (a *app) every(flag time.Duration) time.Duration {
	if flag > 0 {
		return flag
	}
	return a.cfg.Sync.Interval
}
