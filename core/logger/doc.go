// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so that all logs related to a specific trigger request can be correlated.
//
// # Run Log
//
// RunLog is a zapcore.Core teed next to the process logger. It buffers every entry of a
// sync run at or above the report level. The pipeline drains it once all stages have
// finished and hands the text to the notifier.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	runLog := logger.NewRunLog(cfg.Log.ReportLevel)
//	log = runLog.Attach(log)
//	log.Warn("SKU not found", zap.String("sku", "000123456789"))
//	report := runLog.Drain()
package logger
