package ratelimit

// Config holds configuration for the remote call budget limiter.
type Config struct {
	// Threshold is the low-water mark; below it callers pause.
	Threshold int `mapstructure:"threshold" default:"11"`
	// CooldownSeconds is how long a caller pauses when the budget is low.
	CooldownSeconds int `mapstructure:"cooldown_seconds" default:"5"`
}
