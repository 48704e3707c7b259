package checks

import (
	"context"
	"fmt"

	"shopify-sync/core/commerce"
)

// CommerceReport is the result of probing the commerce platform.
type CommerceReport struct {
	Reachable  bool   `json:"reachable"`
	Products   int    `json:"products"`
	OpenOrders int    `json:"open_orders"`
	Error      string `json:"error,omitempty"`
}

// CheckCommerce verifies the platform answers authenticated count queries.
// An unreachable platform is reported, not returned as an error.
func CheckCommerce(ctx context.Context, api commerce.API) (*CommerceReport, error) {
	if api == nil {
		return nil, fmt.Errorf("commerce client is nil")
	}

	report := &CommerceReport{}
	products, err := api.Count(ctx, commerce.Products, nil)
	if err != nil {
		report.Error = err.Error()
		return report, nil
	}
	orders, err := api.Count(ctx, commerce.Orders, commerce.Filter{"status": "open"})
	if err != nil {
		report.Error = err.Error()
		return report, nil
	}

	report.Reachable = true
	report.Products = products
	report.OpenOrders = orders
	return report, nil
}
