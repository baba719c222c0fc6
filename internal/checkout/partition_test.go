package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gruppopolinex/polinex-backend/internal/cart"
)

func item(id, priceID string, typ cart.FulfillmentType, qty int) cart.Item {
	return cart.Item{
		ID:            id,
		Title:         "Item " + id,
		Price:         decimal.NewFromInt(10),
		Quantity:      qty,
		Type:          typ,
		StripePriceID: priceID,
	}
}

func TestPartitionPayableFilter(t *testing.T) {
	t.Parallel()

	items := []cart.Item{
		item("a", "price_1", cart.TypeDownloadable, 1),
		item("b", "", cart.TypeDownloadable, 1),
		item("c", "   ", cart.TypeDownloadable, 1),
	}

	lines, _ := Partition(items)
	if len(lines) != 1 {
		t.Fatalf("expected exactly one payable line, got %d", len(lines))
	}
	if lines[0].ID != "a" {
		t.Fatalf("expected payable set {a}, got %s", lines[0].ID)
	}
}

func TestPartitionShippingFlagCoversWholeCart(t *testing.T) {
	t.Parallel()

	// The shippable item is browse-only; the payable item is downloadable.
	items := []cart.Item{
		item("libro", "", cart.TypeShipped, 1),
		item("corso", "price_1", cart.TypeDownloadable, 1),
	}

	lines, hasShippable := Partition(items)
	if !hasShippable {
		t.Fatal("shipping flag must cover the whole cart, not just payable lines")
	}
	if len(lines) != 1 || lines[0].ID != "corso" {
		t.Fatalf("unexpected payable lines %+v", lines)
	}
}

func TestPartitionNoShippable(t *testing.T) {
	t.Parallel()

	items := []cart.Item{
		item("corso", "price_1", cart.TypeDownloadable, 1),
		item("sala", "", cart.TypeOther, 1),
	}

	_, hasShippable := Partition(items)
	if hasShippable {
		t.Fatal("expected no shippable items")
	}
}

func TestPartitionClampsQuantities(t *testing.T) {
	t.Parallel()

	items := []cart.Item{item("a", "price_1", cart.TypeDownloadable, -2)}

	lines, _ := Partition(items)
	if lines[0].Quantity != 1 {
		t.Fatalf("expected clamped quantity 1, got %d", lines[0].Quantity)
	}
}

func TestPartitionCarriesLineFields(t *testing.T) {
	t.Parallel()

	src := cart.Item{
		ID:            "corso-business-plan",
		Title:         "Corso Online: Costruire un Business Plan",
		Price:         decimal.NewFromInt(149),
		Quantity:      2,
		Type:          cart.TypeDownloadable,
		StripePriceID: "price_1CorsoBusPlan01",
		Href:          "/corsi/corso-business-plan",
		Metadata:      map[string]string{"slug": "corso-business-plan"},
	}

	lines, _ := Partition([]cart.Item{src})
	line := lines[0]
	if line.StripePriceID != src.StripePriceID || line.Title != src.Title || line.Href != src.Href {
		t.Fatalf("line fields not carried: %+v", line)
	}
	if line.Metadata["slug"] != "corso-business-plan" {
		t.Fatal("metadata must be forwarded opaquely")
	}
}

func TestPartitionEmptyCart(t *testing.T) {
	t.Parallel()

	lines, hasShippable := Partition(nil)
	if len(lines) != 0 || hasShippable {
		t.Fatalf("unexpected partition of empty cart: %+v %v", lines, hasShippable)
	}
}
