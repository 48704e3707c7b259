package shipments

// Config holds configuration for the shipment sync task.
type Config struct {
	// Dir is the file store directory holding shipment feeds.
	Dir string `mapstructure:"dir" default:"feeds/shipments"`
	// Columns overrides feed header labels ("po=PO,tracking=Tracking #").
	Columns string `mapstructure:"columns" default:""`
	// NotifyCustomer asks the platform to email the customer on fulfillment.
	NotifyCustomer bool `mapstructure:"notify_customer" default:"false"`
}
