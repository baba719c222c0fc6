package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	pkgstripe "github.com/gruppopolinex/polinex-backend/pkg/stripe"
)

type stubGateway struct {
	req    *pkgstripe.SessionRequest
	url    string
	err    error
	called int
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, req pkgstripe.SessionRequest) (string, error) {
	g.called++
	g.req = &req
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		SuccessURL: "https://www.polinex.it/grazie",
		CancelURL:  "https://www.polinex.it/carrello",
	}
}

func TestCheckoutRejectsEmptyPayableSet(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{url: "https://checkout.example/s"}
	svc, err := NewService(gateway, testConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	items := []cart.Item{
		item("libro", "", cart.TypeShipped, 1),
		item("sala", "  ", cart.TypeOther, 2),
	}

	_, err = svc.Checkout(context.Background(), items)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "no purchasable items: missing external price reference" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if gateway.called != 0 {
		t.Fatal("gateway must not be called for an empty payable set")
	}
}

func TestCheckoutBuildsSessionRequest(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{url: "https://checkout.example/s"}
	svc, _ := NewService(gateway, testConfig())

	items := []cart.Item{
		item("libro", "price_libro", cart.TypeShipped, 2),
		item("corso", "price_corso", cart.TypeDownloadable, 1),
		item("sala", "", cart.TypeOther, 1),
	}
	items[1].Metadata = map[string]string{"slug": "corso"}

	url, err := svc.Checkout(context.Background(), items)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if url != "https://checkout.example/s" {
		t.Fatalf("unexpected url %q", url)
	}

	req := gateway.req
	if req == nil {
		t.Fatal("gateway not called")
	}
	if len(req.Lines) != 2 {
		t.Fatalf("expected 2 payable lines, got %d", len(req.Lines))
	}
	if req.Lines[0].PriceID != "price_libro" || req.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line %+v", req.Lines[0])
	}
	if !req.CollectAddress {
		t.Fatal("expected address collection for a cart with a shippable item")
	}
	if req.Metadata["slug"] != "corso" {
		t.Fatalf("expected forwarded metadata, got %+v", req.Metadata)
	}
	if req.SuccessURL != "https://www.polinex.it/grazie" || req.CancelURL != "https://www.polinex.it/carrello" {
		t.Fatalf("unexpected redirect urls %q %q", req.SuccessURL, req.CancelURL)
	}
}

func TestCheckoutNoAddressCollectionWithoutShippables(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{url: "https://checkout.example/s"}
	svc, _ := NewService(gateway, testConfig())

	_, err := svc.Checkout(context.Background(), []cart.Item{
		item("corso", "price_corso", cart.TypeDownloadable, 1),
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if gateway.req.CollectAddress {
		t.Fatal("did not expect address collection")
	}
}

func TestCheckoutGatewayFailure(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{err: errors.New("stripe down")}
	svc, _ := NewService(gateway, testConfig())

	_, err := svc.Checkout(context.Background(), []cart.Item{
		item("corso", "price_corso", cart.TypeDownloadable, 1),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceRequiresGateway(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, testConfig()); err == nil {
		t.Fatal("expected error for nil gateway")
	}
}
