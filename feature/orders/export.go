package orders

import (
	"sort"
	"strconv"
	"time"

	"shopify-sync/core/commerce"
	"shopify-sync/core/cursor"
	"shopify-sync/core/utils"
)

// Header is the column layout of the order export file.
var Header = []string{
	"order_name",
	"created_at",
	"email",
	"ship_name",
	"ship_company",
	"ship_address1",
	"ship_address2",
	"ship_city",
	"ship_province",
	"ship_zip",
	"ship_country",
	"ship_phone",
	"ship_code",
	"sku",
	"quantity",
	"price",
}

// Records flattens orders to one export record per line item, in order
// creation order. Orders without line items produce no record.
func Records(orders []commerce.Order, codes ShipCodes) [][]string {
	sorted := append([]commerce.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var out [][]string
	for _, o := range sorted {
		addr := commerce.Address{}
		if o.ShippingAddress != nil {
			addr = *o.ShippingAddress
		}
		shipCode := codes.Lookup(o.ShippingLines)
		for _, li := range o.LineItems {
			out = append(out, []string{
				utils.NormalizeOrderName(o.Name),
				o.CreatedAt.UTC().Format(time.RFC3339),
				o.Email,
				addr.Name,
				addr.Company,
				addr.Address1,
				addr.Address2,
				addr.City,
				addr.Province,
				addr.Zip,
				addr.Country,
				addr.Phone,
				shipCode,
				li.SKU,
				strconv.Itoa(li.Quantity),
				utils.FormatMoney(li.Price),
			})
		}
	}
	return out
}

// Watermark returns the newest creation time among orders together with
// the IDs of the orders created at that second. ok is false for no orders.
func Watermark(orders []commerce.Order) (cursor.Mark, bool) {
	var mark cursor.Mark
	for i, o := range orders {
		switch {
		case i == 0 || o.CreatedAt.After(mark.Position):
			mark = cursor.Mark{Position: o.CreatedAt, Seen: []int64{o.ID}}
		case o.CreatedAt.Equal(mark.Position):
			mark.Seen = append(mark.Seen, o.ID)
		}
	}
	return mark, len(orders) > 0
}
