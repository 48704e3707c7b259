// Package shipments turns warehouse shipment feeds into fulfillments.
//
// Rows are grouped by PO and tracking number, matched against open orders
// and their line items by SKU, and created one fulfillment per group in feed
// order. A failed fulfillment stops the remaining ones in that feed.
package shipments
