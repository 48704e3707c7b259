package cursor

// Config holds configuration for the cursor store.
type Config struct {
	// Driver selects the backend: "object" (file store artifact) or "database".
	Driver string `mapstructure:"driver" default:"object"`
	// Prefix is the file store directory holding cursor artifacts.
	Prefix string `mapstructure:"prefix" default:"cursors"`
}

const (
	DriverObject   = "object"
	DriverDatabase = "database"
)
