package notify

// Config holds configuration for the operator notification channel.
type Config struct {
	// Driver selects the channel: "storage" (report file in the bucket), "log" or "none".
	Driver string `mapstructure:"driver" default:"storage"`
	// Prefix is the file store directory for report files.
	Prefix string `mapstructure:"prefix" default:"reports"`
	// Subject prefixes every report subject.
	Subject string `mapstructure:"subject" default:"shopify-sync"`
}

const (
	DriverStorage = "storage"
	DriverLog     = "log"
	DriverNone    = "none"
)
