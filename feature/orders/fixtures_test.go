package orders

import (
	"time"

	"shopify-sync/core/commerce"

	"github.com/shopspring/decimal"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureOrders() []commerce.Order {
	return []commerce.Order{
		{
			ID:        1001,
			Name:      "#1001",
			Email:     "ann@example.com",
			CreatedAt: at("2024-03-01T10:00:00Z"),
			ShippingAddress: &commerce.Address{
				Name:     "Ann Lee",
				Address1: "1 Main St",
				Address2: "Apt 2",
				City:     "Springfield",
				Province: "IL",
				Zip:      "62701",
				Country:  "US",
				Phone:    "555-0100",
			},
			ShippingLines: []commerce.ShippingLine{{Code: "Standard", Title: "Standard Shipping"}},
			LineItems: []commerce.LineItem{
				{ID: 1, SKU: "ABC-1", Quantity: 2, Price: decimal.NewFromInt(10)},
				{ID: 2, SKU: "XYZ-9", Quantity: 1, Price: decimal.RequireFromString("4.5")},
			},
		},
		{
			ID:        1002,
			Name:      "#1002",
			Email:     "bo@example.com",
			CreatedAt: at("2024-03-01T09:30:00Z"),
			ShippingAddress: &commerce.Address{
				Name:     "Bo Smith",
				Company:  "Acme, Inc.",
				Address1: "9 Elm Rd",
				City:     "Portland",
				Province: "OR",
				Zip:      "97201",
				Country:  "US",
			},
			ShippingLines: []commerce.ShippingLine{{Title: "Next  Day Air"}},
			LineItems:     []commerce.LineItem{{ID: 3, SKU: "ABC-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		},
		{
			ID:        1003,
			Name:      "#1003",
			CreatedAt: at("2024-03-02T08:00:00Z"),
			LineItems: []commerce.LineItem{{ID: 4, SKU: "GIFT", Quantity: 1, Price: decimal.NewFromInt(25)}},
		},
		{
			ID:        1004,
			Name:      "#1004",
			CreatedAt: at("2024-03-02T09:00:00Z"),
		},
	}
}
