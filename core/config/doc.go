// Package config provides configuration management for shopify-sync.
//
// It loads a .env file when present, then reads environment variables
// through Viper. Defaults come from the `default` struct tags of every
// section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP trigger settings (port, API key)
//   - Storage: S3/MinIO credentials and bucket
//   - Log: logging level, format and run report level
//   - Database: optional MySQL/SQLite connection for cursors and run history
//   - Shopify: store name, credentials and API version
//   - RateLimit: call budget low-water mark and cooldown
//   - Sync: page size, workers, strict keys, interval and one section per task
//   - Cursor: export cursor backend
//   - Notify: run report channel
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Inventory.Dir)
package config
