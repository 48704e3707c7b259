package pipeline

import (
	"shopify-sync/core/commerce"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/storage"

	"go.uber.org/zap"
)

// Deps are the collaborators shared by the tasks of one invocation. They are
// constructed once per invocation and passed to every task explicitly.
type Deps struct {
	// API is the remote commerce platform.
	API commerce.API
	// Files is the file store holding feeds, exports and cursors.
	Files storage.FileStore
	// Throttle is consulted before every remote call.
	Throttle reconcile.Throttle
	// Logger is the run logger.
	Logger *zap.Logger
	// PageSize is the enumeration page size.
	PageSize int
	// Workers bounds Independent batches.
	Workers int
	// Fanout bounds concurrent feed downloads.
	Fanout int
}

// Log returns the logger, or a no-op logger when none is set.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
