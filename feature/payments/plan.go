package payments

import (
	"errors"
	"fmt"

	"shopify-sync/core/commerce"
	"shopify-sync/core/feed"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/utils"

	"github.com/shopspring/decimal"
)

// KindCapture is the transaction kind that collects authorized funds.
const KindCapture = "capture"

// PlanResult is the outcome of resolving a capture feed.
type PlanResult struct {
	Mutations []reconcile.Mutation
	Warnings  []reconcile.Warning
	Rejected  []reconcile.Warning
	Dropped   int
}

// Plan groups capture rows by PO and resolves each group against the
// authorized orders. Amounts of a group are summed; a group without any
// amount captures the order total. A capture above the order total or not
// positive is skipped with a warning.
func Plan(rows []feed.Row, orders *reconcile.Index[commerce.Order]) PlanResult {
	var res PlanResult
	groups, dropped := reconcile.GroupRows(rows, func(r feed.Row) string {
		return utils.NormalizeOrderName(r.Get(FieldPO))
	})
	res.Dropped = dropped

	for _, g := range groups {
		po := g.Rows[0].Get(FieldPO)

		order, err := orders.Strict(po)
		if errors.Is(err, reconcile.ErrDuplicateKey) {
			res.Rejected = append(res.Rejected, reconcile.Warning{Key: po, Err: err})
			continue
		}
		if err != nil {
			res.Warnings = append(res.Warnings, reconcile.Warning{
				Key: po,
				Err: fmt.Errorf("no authorized order: %w", err),
			})
			continue
		}

		amount, err := groupAmount(g.Rows, order.TotalPrice)
		if err != nil {
			res.Warnings = append(res.Warnings, reconcile.Warning{Key: po, Err: err})
			continue
		}

		res.Mutations = append(res.Mutations, reconcile.Mutation{
			Op:       reconcile.OpCreate,
			Resource: string(commerce.Transactions),
			TargetID: order.ID,
			Fields: map[string]any{
				"kind":   KindCapture,
				"amount": utils.FormatMoney(amount),
			},
			Key: po,
		})
	}
	return res
}

func groupAmount(rows []feed.Row, total decimal.Decimal) (decimal.Decimal, error) {
	sum := decimal.Zero
	var found bool
	for _, r := range rows {
		v, ok, err := utils.ParseMoney(r.Get(FieldAmount))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", reconcile.ErrValidationGap, err)
		}
		if ok {
			sum = sum.Add(v)
			found = true
		}
	}
	if !found {
		sum = total
	}
	if !sum.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: capture amount %s", reconcile.ErrValidationGap, utils.FormatMoney(sum))
	}
	if sum.GreaterThan(total) {
		return decimal.Zero, fmt.Errorf("%w: capture %s exceeds order total %s",
			reconcile.ErrValidationGap, utils.FormatMoney(sum), utils.FormatMoney(total))
	}
	return sum, nil
}
