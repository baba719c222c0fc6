package cart

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FulfillmentType tags how a cart line is delivered. It decides shipping
// applicability at checkout, never pricing.
type FulfillmentType string

const (
	TypeDownloadable FulfillmentType = "downloadable"
	TypeShipped      FulfillmentType = "shipped"
	TypeOther        FulfillmentType = "other"
)

// Item is one line in the cart. Lines are keyed by ID; two variants of the
// same product carry distinct IDs.
type Item struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Price         decimal.Decimal   `json:"price"`
	Quantity      int               `json:"quantity"`
	Type          FulfillmentType   `json:"type"`
	StripePriceID string            `json:"stripe_price_id,omitempty"`
	Href          string            `json:"href,omitempty"`
	Image         string            `json:"image,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Payable reports whether the line carries a usable external price reference.
// Blank or whitespace-only references mark the line as browse-only.
func (i Item) Payable() bool {
	return strings.TrimSpace(i.StripePriceID) != ""
}

// Shippable reports whether the line requires physical delivery.
func (i Item) Shippable() bool {
	return i.Type == TypeShipped
}

// LineTotal returns price multiplied by quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ClampQuantity resolves any numeric quantity input to max(1, floor(q)).
// Non-finite input resolves to 1.
func ClampQuantity(q float64) int {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 1
	}
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}
