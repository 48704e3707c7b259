package inventory

import (
	"fmt"

	"shopify-sync/core/commerce"
	"shopify-sync/core/feed"
	"shopify-sync/core/reconcile"
	"shopify-sync/core/utils"

	"github.com/shopspring/decimal"
)

// Entry is the identifier map projection of a variant. CompareAt is zero
// when the variant has no compare-at price.
type Entry struct {
	VariantID int64
	Quantity  int
	Price     decimal.Decimal
	CompareAt decimal.Decimal
}

// Desired is the state an inventory row asks for, in canonical form.
// HasPrice is false when the row carries no price; prices are then left alone.
type Desired struct {
	Key       string
	Quantity  int
	HasPrice  bool
	Price     decimal.Decimal
	CompareAt decimal.Decimal
}

// ParseRow converts a feed row to its desired state.
//
// A sale price lower than the regular price becomes the selling price and
// the regular price becomes the compare-at price. Otherwise the regular
// price is the selling price and there is no compare-at price.
func ParseRow(row feed.Row) (Desired, error) {
	d := Desired{Key: row.Get(FieldKey)}

	qty, err := utils.ParseQuantity(row.Get(FieldQuantity))
	if err != nil {
		return d, fmt.Errorf("%w: %v", reconcile.ErrValidationGap, err)
	}
	d.Quantity = qty

	regular, hasRegular, err := utils.ParseMoney(row.Get(FieldPrice))
	if err != nil {
		return d, fmt.Errorf("%w: %v", reconcile.ErrValidationGap, err)
	}
	sale, hasSale, err := utils.ParseMoney(row.Get(FieldSale))
	if err != nil {
		return d, fmt.Errorf("%w: %v", reconcile.ErrValidationGap, err)
	}
	if !hasRegular {
		return d, nil
	}

	d.HasPrice = true
	if hasSale && sale.IsPositive() && sale.LessThan(regular) {
		d.Price = sale
		d.CompareAt = regular
	} else {
		d.Price = regular
	}
	return d, nil
}

// Diff returns the update that moves entry to desired, or nil when nothing
// differs. Values are compared numerically, so "10.0" equals "10.00".
// A quantity change carries the previous quantity.
func Diff(desired Desired, entry Entry) *reconcile.Mutation {
	qtyChanged := desired.Quantity != entry.Quantity
	priceChanged := desired.HasPrice &&
		(!desired.Price.Equal(entry.Price) || !desired.CompareAt.Equal(entry.CompareAt))

	if !qtyChanged && !priceChanged {
		return nil
	}

	fields := make(map[string]any, 4)
	if qtyChanged {
		fields["inventory_quantity"] = desired.Quantity
		fields["old_inventory_quantity"] = entry.Quantity
	}
	if priceChanged {
		fields["price"] = utils.FormatMoney(desired.Price)
		if desired.CompareAt.IsZero() {
			fields["compare_at_price"] = nil
		} else {
			fields["compare_at_price"] = utils.FormatMoney(desired.CompareAt)
		}
	}

	return &reconcile.Mutation{
		Op:       reconcile.OpUpdate,
		Resource: string(commerce.Variants),
		TargetID: entry.VariantID,
		Fields:   fields,
		Key:      desired.Key,
	}
}

// PlanResult is the outcome of diffing a feed against the identifier map.
type PlanResult struct {
	// Mutations are the updates to apply.
	Mutations []reconcile.Mutation
	// Warnings are rows skipped because their key was not mapped or a value
	// was malformed.
	Warnings []reconcile.Warning
	// Unmapped counts warnings caused by lookup misses.
	Unmapped int
	// Unchanged counts rows that already matched the platform.
	Unchanged int
}

// Plan diffs every row against the index. A row whose key is not mapped is
// skipped with a warning and never aborts the plan.
func Plan(rows []feed.Row, index *reconcile.Index[Entry]) PlanResult {
	var res PlanResult
	for _, row := range rows {
		desired, err := ParseRow(row)
		if err != nil {
			res.Warnings = append(res.Warnings, reconcile.Warning{Key: row.Get(FieldKey), Err: err})
			continue
		}

		entry, ok := index.Lookup(desired.Key)
		if !ok {
			res.Unmapped++
			res.Warnings = append(res.Warnings, reconcile.Warning{Key: desired.Key, Err: reconcile.ErrLookupMiss})
			continue
		}

		m := Diff(desired, entry)
		if m == nil {
			res.Unchanged++
			continue
		}
		res.Mutations = append(res.Mutations, *m)
	}
	return res
}

// BuildIndex maps every variant of the catalog by its business key.
func BuildIndex(products []commerce.Product, cfg Config) *reconcile.Index[Entry] {
	return reconcile.BuildIndex(products, reconcile.Projection[commerce.Product, commerce.Variant, Entry]{
		Children: func(p commerce.Product) []commerce.Variant { return p.Variants },
		Key: func(v commerce.Variant) string {
			if cfg.KeyField == KeyFieldBarcode {
				return v.Barcode
			}
			return v.SKU
		},
		Value: func(_ commerce.Product, v commerce.Variant) Entry {
			e := Entry{VariantID: v.ID, Quantity: v.InventoryQuantity, Price: v.Price}
			if v.CompareAtPrice.Valid {
				e.CompareAt = v.CompareAtPrice.Decimal
			}
			return e
		},
		Normalize: KeyNormalizer(cfg.KeyWidth),
	})
}

// KeyNormalizer returns the key canonicalization used on both sides of the
// match: normalized, then zero-padded to width when numeric.
func KeyNormalizer(width int) func(string) string {
	if width <= 0 {
		return utils.NormalizeKey
	}
	return func(k string) string { return utils.PadKey(k, width) }
}
