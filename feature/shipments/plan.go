package shipments

import (
	"errors"
	"fmt"

	"shopify-sync/core/commerce"
	"shopify-sync/core/feed"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/utils"
)

// PlanResult is the outcome of grouping a shipment feed and resolving the
// groups against the open orders.
type PlanResult struct {
	// Mutations holds one fulfillment per group, in feed order.
	Mutations []reconcile.Mutation
	// Warnings are skipped groups and excluded rows.
	Warnings []reconcile.Warning
	// Rejected are groups whose PO matched several open orders.
	Rejected []reconcile.Warning
	// Dropped counts rows without a PO number.
	Dropped int
}

// GroupKey identifies one fulfillment: rows sharing a PO number and a
// tracking number. Rows without a PO number have no key.
func GroupKey(row feed.Row) string {
	po := utils.NormalizeOrderName(row.Get(FieldPO))
	if po == "" {
		return ""
	}
	return po + "|" + utils.NormalizeKey(row.Get(FieldTracking))
}

// Plan groups rows into fulfillments and resolves each against the order
// index.
//
// A PO with no open order skips its group with a warning. A PO shared by
// several open orders rejects the group. Within a group, rows whose SKU is
// not on the order or whose quantity is malformed are excluded with a
// warning; a group left without line items produces no fulfillment.
// Tracking number, carrier and the optional notify flag come from the
// group's first row; a blank notify cell falls back to notifyCustomer.
func Plan(rows []feed.Row, orders *reconcile.Index[commerce.Order], carriers Carriers, notifyCustomer bool) PlanResult {
	var res PlanResult
	groups, dropped := reconcile.GroupRows(rows, GroupKey)
	res.Dropped = dropped

	for _, g := range groups {
		first := g.Rows[0]
		po := first.Get(FieldPO)

		order, err := orders.Strict(po)
		if errors.Is(err, reconcile.ErrDuplicateKey) {
			res.Rejected = append(res.Rejected, reconcile.Warning{Key: po, Err: err})
			continue
		}
		if err != nil {
			res.Warnings = append(res.Warnings, reconcile.Warning{Key: po, Err: err})
			continue
		}

		var (
			lineItems []map[string]any
			pos       = make(map[int64]int)
		)
		for _, row := range g.Rows {
			sku := row.Get(FieldSKU)
			li, ok := order.FindLineItem(sku)
			if !ok {
				res.Warnings = append(res.Warnings, reconcile.Warning{
					Key: po + " " + sku,
					Err: fmt.Errorf("%w: sku not on order", reconcile.ErrLookupMiss),
				})
				continue
			}
			qty, err := utils.ParseQuantity(row.Get(FieldQuantity))
			if err != nil || qty <= 0 {
				res.Warnings = append(res.Warnings, reconcile.Warning{
					Key: po + " " + sku,
					Err: fmt.Errorf("%w: quantity %q", reconcile.ErrValidationGap, row.Get(FieldQuantity)),
				})
				continue
			}
			if i, seen := pos[li.ID]; seen {
				lineItems[i]["quantity"] = lineItems[i]["quantity"].(int) + qty
				continue
			}
			pos[li.ID] = len(lineItems)
			lineItems = append(lineItems, map[string]any{"id": li.ID, "quantity": qty})
		}
		if len(lineItems) == 0 {
			res.Warnings = append(res.Warnings, reconcile.Warning{
				Key: po,
				Err: fmt.Errorf("%w: no shipped sku matches order %s", reconcile.ErrLookupMiss, order.Name),
			})
			continue
		}

		notify := notifyCustomer
		if cell := first.Get(FieldNotify); cell != "" {
			notify = utils.ToBool(cell)
		}

		fields := map[string]any{
			"line_items":      lineItems,
			"notify_customer": notify,
		}
		if tracking := first.Get(FieldTracking); tracking != "" {
			fields["tracking_number"] = tracking
		}
		if carrier := first.Get(FieldCarrier); carrier != "" {
			fields["tracking_company"] = carriers.Company(carrier)
		}

		res.Mutations = append(res.Mutations, reconcile.Mutation{
			Op:       reconcile.OpCreate,
			Resource: string(commerce.Fulfillments),
			TargetID: order.ID,
			Fields:   fields,
			Key:      po,
		})
	}
	return res
}
