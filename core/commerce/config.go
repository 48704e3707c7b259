package commerce

// Config holds configuration for the remote commerce platform (Shopify Admin API).
type Config struct {
	// ShopName is the store's myshopify subdomain.
	ShopName string `mapstructure:"shop_name" default:""`
	// APIKey is the private app API key (basic auth user).
	APIKey string `mapstructure:"api_key" default:""`
	// Password is the private app password (basic auth password).
	Password string `mapstructure:"password" default:""`
	// APIVersion is the Admin REST API version.
	APIVersion string `mapstructure:"api_version" default:"2024-01"`
	// BaseURL overrides the URL derived from ShopName (e.g. a proxy).
	BaseURL string `mapstructure:"base_url" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
