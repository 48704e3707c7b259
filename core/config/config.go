package config

import (
	"reflect"
	"strings"
	"time"

	"shopify-sync/core/commerce"
	"shopify-sync/core/cursor"
	"shopify-sync/core/database"
	"shopify-sync/core/logger"
	"shopify-sync/core/notify"
	"shopify-sync/core/ratelimit"
	"shopify-sync/core/server"
	"shopify-sync/core/storage"
	"shopify-sync/feature/inventory"
	"shopify-sync/feature/orders"
	"shopify-sync/feature/payments"
	"shopify-sync/feature/shipments"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP trigger server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the file store bucket (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger and the run report.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional database connection.
	Database database.Config `mapstructure:"database"`
	// Shopify holds configuration for the commerce platform.
	Shopify commerce.Config `mapstructure:"shopify"`
	// RateLimit holds the call budget backpressure policy.
	RateLimit ratelimit.Config `mapstructure:"ratelimit"`
	// Sync holds the pipeline and task settings.
	Sync Sync `mapstructure:"sync"`
	// Cursor holds configuration for the export cursor store.
	Cursor cursor.Config `mapstructure:"cursor"`
	// Notify holds configuration for the run report channel.
	Notify notify.Config `mapstructure:"notify"`
}

// Sync holds the pipeline settings and one section per task.
type Sync struct {
	// PageSize is the enumeration page size (max 250).
	PageSize int `mapstructure:"page_size" default:"250"`
	// Workers bounds concurrent calls in independent batches.
	Workers int `mapstructure:"workers" default:"4"`
	// Fanout bounds concurrent feed downloads.
	Fanout int `mapstructure:"fanout" default:"4"`
	// StrictKeys fails inventory rows whose key is not mapped instead of warning.
	StrictKeys bool `mapstructure:"strict_keys" default:"false"`
	// Interval re-runs the pipeline in the sync command; 0 runs once.
	Interval time.Duration `mapstructure:"interval" default:"0s"`

	Inventory inventory.Config `mapstructure:"inventory"`
	Orders    orders.Config    `mapstructure:"orders"`
	Shipments shipments.Config `mapstructure:"shipments"`
	Payments  payments.Config  `mapstructure:"payments"`
}

// Folders returns the bucket folders the pipeline reads from and writes to.
func (c *Config) Folders() []string {
	candidates := []string{
		c.Sync.Inventory.Dir,
		c.Sync.Shipments.Dir,
		c.Sync.Payments.Dir,
		c.Sync.Orders.Dir,
	}
	if c.Cursor.Driver != cursor.DriverDatabase {
		candidates = append(candidates, c.Cursor.Prefix)
	}
	if c.Notify.Driver == notify.DriverStorage {
		candidates = append(candidates, c.Notify.Prefix)
	}

	seen := make(map[string]bool, len(candidates))
	var folders []string
	for _, f := range candidates {
		f = strings.Trim(f, "/")
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		folders = append(folders, f)
	}
	return folders
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SHOPIFY_SHOP_NAME -> shopify.shop_name)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
