// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application's
// configuration. The database is optional; it backs the database cursor store
// and the run history.
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions of a table. The integrity
// check uses it to verify that the sync tables match their GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "sync_cursors")
package database
