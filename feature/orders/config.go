package orders

// Config holds configuration for the order export task.
type Config struct {
	// Dir is the file store directory receiving export files.
	Dir string `mapstructure:"dir" default:"exports"`
	// CursorKey names the watermark of the last exported order.
	CursorKey string `mapstructure:"cursor_key" default:"orders"`
	// Status is the order status filter sent to the platform.
	Status string `mapstructure:"status" default:"any"`
}
