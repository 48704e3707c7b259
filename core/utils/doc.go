// Package utils provides common helpers for the shopify-sync application.
// It includes business key normalization and conversion of feed cells into
// quantities, money amounts and flags.
package utils
