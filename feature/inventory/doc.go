// Package inventory syncs warehouse inventory feeds into the commerce
// platform's variants.
//
// Each run enumerates the catalog once, maps every variant by its business
// key (SKU or barcode, numeric keys zero-padded to UPC width), and diffs each
// feed row against it. Only rows whose quantity, price or compare-at price
// actually differ produce an update; a row whose key is not mapped is skipped
// with a warning. Updates run as an independent batch, and a feed is deleted
// once every update derived from it was attempted.
package inventory
