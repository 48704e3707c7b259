// Package payments captures authorized payments listed in warehouse feeds.
package payments
