package commerce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Resource is a remote resource kind, named as in the REST paths.
type Resource string

const (
	Products     Resource = "products"
	Variants     Resource = "variants"
	Orders       Resource = "orders"
	Fulfillments Resource = "fulfillments"
	Transactions Resource = "transactions"
)

// singular returns the JSON envelope key for one resource ("variant").
func (r Resource) singular() string {
	return strings.TrimSuffix(string(r), "s")
}

// parent returns the resource that owns a sub-resource.
func (r Resource) parent() Resource {
	switch r {
	case Fulfillments, Transactions:
		return Orders
	case Variants:
		return Products
	default:
		return ""
	}
}

// Filter holds query parameters that select a subset of a collection.
type Filter map[string]string

// Product is a catalog product with its variants.
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Variants []Variant `json:"variants"`
}

// Variant is a sellable SKU of a product.
type Variant struct {
	ID                int64               `json:"id"`
	ProductID         int64               `json:"product_id"`
	SKU               string              `json:"sku"`
	Barcode           string              `json:"barcode"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	Price             decimal.Decimal     `json:"price"`
	CompareAtPrice    decimal.NullDecimal `json:"compare_at_price"`
}

// Order is a customer order.
type Order struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	CreatedAt         time.Time       `json:"created_at"`
	FinancialStatus   string          `json:"financial_status"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	ShippingAddress   *Address        `json:"shipping_address"`
	ShippingLines     []ShippingLine  `json:"shipping_lines"`
	LineItems         []LineItem      `json:"line_items"`
}

// Address is a postal address.
type Address struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province_code"`
	Zip      string `json:"zip"`
	Country  string `json:"country_code"`
	Phone    string `json:"phone"`
}

// ShippingLine is the shipping method chosen at checkout.
type ShippingLine struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// LineItem is one SKU on an order.
type LineItem struct {
	ID                  int64           `json:"id"`
	VariantID           int64           `json:"variant_id"`
	SKU                 string          `json:"sku"`
	Title               string          `json:"title"`
	Quantity            int             `json:"quantity"`
	FulfillableQuantity int             `json:"fulfillable_quantity"`
	Price               decimal.Decimal `json:"price"`
}

// Transaction is a payment transaction on an order.
type Transaction struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	Kind     string          `json:"kind"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	ParentID int64           `json:"parent_id"`
}

// Order financial states used by the sync tasks.
const (
	FinancialAuthorized = "authorized"
	FinancialPaid       = "paid"
)
