package commerce

import (
	"shopify-sync/core/reconcile"
	"shopify-sync/core/utils"
)

// IndexOrders maps orders by their name, the PO number warehouses quote.
// Names are normalized so "#1001" and "1001" share a key. Orders sharing a
// name are recorded as duplicates; use Index.Strict to reject them.
func IndexOrders(orders []Order) *reconcile.Index[Order] {
	return reconcile.BuildIndex(orders, reconcile.Projection[Order, Order, Order]{
		Key:       func(o Order) string { return o.Name },
		Value:     func(o, _ Order) Order { return o },
		Normalize: utils.NormalizeOrderName,
	})
}

// FindLineItem returns the line item of o whose SKU matches sku.
func (o Order) FindLineItem(sku string) (LineItem, bool) {
	want := utils.NormalizeKey(sku)
	if want == "" {
		return LineItem{}, false
	}
	for _, li := range o.LineItems {
		if utils.NormalizeKey(li.SKU) == want {
			return li, true
		}
	}
	return LineItem{}, false
}
