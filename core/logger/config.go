package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level written to the process log (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding of the process log (json, console).
	Format string `mapstructure:"format" default:"json"`
	// ReportLevel is the minimum level captured into the run report that is
	// flushed to the notifier at the end of a sync run.
	ReportLevel string `mapstructure:"report_level" default:"info"`
}
