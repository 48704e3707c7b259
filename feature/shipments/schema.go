package shipments

import "shopify-sync/core/feed"

// Field names of the shipment feed.
const (
	FieldPO       = "po"
	FieldTracking = "tracking"
	FieldCarrier  = "carrier"
	FieldSKU      = "sku"
	FieldQuantity = "quantity"
	FieldNotify   = "notify"
)

// Schema returns the warehouse shipment feed layout.
func Schema() feed.Schema {
	return feed.Schema{
		Name: "shipments",
		Columns: map[string]string{
			FieldPO:       "PO Number",
			FieldTracking: "Tracking Number",
			FieldCarrier:  "Carrier",
			FieldSKU:      "SKU",
			FieldQuantity: "Quantity",
			FieldNotify:   "Notify Customer",
		},
		Required: []string{FieldPO, FieldSKU, FieldQuantity},
	}
}
