package inventory

// Config holds configuration for the inventory sync task.
type Config struct {
	// Dir is the file store directory holding inventory feeds.
	Dir string `mapstructure:"dir" default:"feeds/inventory"`
	// Columns overrides feed header labels ("key=UPC,quantity=Qty").
	Columns string `mapstructure:"columns" default:""`
	// KeyField is the variant field matched against the feed key (sku, barcode).
	KeyField string `mapstructure:"key_field" default:"sku"`
	// KeyWidth zero-pads numeric keys on both sides of the match. 0 disables padding.
	KeyWidth int `mapstructure:"key_width" default:"12"`
}

const (
	KeyFieldSKU     = "sku"
	KeyFieldBarcode = "barcode"
)
