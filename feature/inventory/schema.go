package inventory

import "shopify-sync/core/feed"

// Field names of the inventory feed.
const (
	FieldKey      = "key"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldSale     = "sale_price"
)

// Schema returns the warehouse inventory feed layout.
func Schema() feed.Schema {
	return feed.Schema{
		Name: "inventory",
		Columns: map[string]string{
			FieldKey:      "(C)upc",
			FieldQuantity: "(C)qty",
			FieldPrice:    "(C)price",
			FieldSale:     "(C)sale_price",
		},
		Required: []string{FieldKey, FieldQuantity},
	}
}
