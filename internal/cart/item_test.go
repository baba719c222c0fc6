package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestClampQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   float64
		want int
	}{
		{"positive integer", 3, 3},
		{"one", 1, 1},
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"fractional floors", 2.9, 2},
		{"fractional below one", 0.4, 1},
		{"nan", math.NaN(), 1},
		{"positive infinity", math.Inf(1), 1},
		{"negative infinity", math.Inf(-1), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampQuantity(tc.in); got != tc.want {
				t.Fatalf("ClampQuantity(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestItemPayable(t *testing.T) {
	t.Parallel()

	if !(Item{StripePriceID: "price_1"}).Payable() {
		t.Fatal("expected item with price reference to be payable")
	}
	if (Item{StripePriceID: ""}).Payable() {
		t.Fatal("expected item without price reference to be browse-only")
	}
	if (Item{StripePriceID: "   "}).Payable() {
		t.Fatal("expected whitespace-only price reference to be browse-only")
	}
}

func TestItemShippable(t *testing.T) {
	t.Parallel()

	if !(Item{Type: TypeShipped}).Shippable() {
		t.Fatal("expected shipped item to be shippable")
	}
	if (Item{Type: TypeDownloadable}).Shippable() {
		t.Fatal("expected downloadable item not to be shippable")
	}
}

func TestItemLineTotal(t *testing.T) {
	t.Parallel()

	item := Item{Price: decimal.NewFromFloat(24.50), Quantity: 3}
	if got := item.LineTotal(); !got.Equal(decimal.NewFromFloat(73.50)) {
		t.Fatalf("unexpected line total %s", got)
	}
}
