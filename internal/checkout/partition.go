package checkout

import (
	"github.com/gruppopolinex/polinex-backend/internal/cart"
)

// LineRequest is one payable cart line shaped for the payment gateway.
type LineRequest struct {
	StripePriceID string               `json:"stripe_price_id"`
	Quantity      int                  `json:"quantity"`
	Type          cart.FulfillmentType `json:"type"`
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Href          string               `json:"href,omitempty"`
	Metadata      map[string]string    `json:"metadata,omitempty"`
}

// Partition splits the snapshot into payable gateway lines and computes
// whether any line requires physical shipment. The shipping flag is computed
// over the entire cart, not just the payable subset, so the payment flow can
// collect an address even when the shippable line itself is browse-only.
func Partition(items []cart.Item) ([]LineRequest, bool) {
	lines := make([]LineRequest, 0, len(items))
	hasShippable := false

	for _, item := range items {
		if item.Shippable() {
			hasShippable = true
		}
		if !item.Payable() {
			continue
		}
		lines = append(lines, LineRequest{
			StripePriceID: item.StripePriceID,
			Quantity:      cart.ClampQuantity(float64(item.Quantity)),
			Type:          item.Type,
			ID:            item.ID,
			Title:         item.Title,
			Href:          item.Href,
			Metadata:      item.Metadata,
		})
	}

	return lines, hasShippable
}
