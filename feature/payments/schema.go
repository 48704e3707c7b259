package payments

import "shopify-sync/core/feed"

// Field names of the capture feed.
const (
	FieldPO     = "po"
	FieldAmount = "amount"
)

// Schema returns the capture feed layout. A blank amount captures the
// order total.
func Schema() feed.Schema {
	return feed.Schema{
		Name: "payments",
		Columns: map[string]string{
			FieldPO:     "PO Number",
			FieldAmount: "Amount",
		},
		Required: []string{FieldPO},
	}
}
