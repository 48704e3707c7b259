package payments

// Config holds configuration for the payment capture task.
type Config struct {
	// Dir is the file store directory holding capture feeds.
	Dir string `mapstructure:"dir" default:"feeds/payments"`
	// Columns overrides feed header labels ("po=PO,amount=Total").
	Columns string `mapstructure:"columns" default:""`
}
