package checkout

import (
	"context"
	"fmt"

	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	pkgstripe "github.com/gruppopolinex/polinex-backend/pkg/stripe"
)

// Gateway opens checkout sessions with the payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req pkgstripe.SessionRequest) (string, error)
}

// Service turns a cart snapshot into a gateway session. Checkout is
// non-destructive: the cart is never mutated here.
type Service interface {
	Checkout(ctx context.Context, items []cart.Item) (string, error)
}

type service struct {
	gateway Gateway
	cfg     config.CheckoutConfig
}

// NewService builds a checkout service on top of the gateway.
func NewService(gateway Gateway, cfg config.CheckoutConfig) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &service{gateway: gateway, cfg: cfg}, nil
}

// Checkout partitions the snapshot, rejects carts with nothing purchasable,
// and hands the payable lines to the gateway. Returns the redirect URL.
func (s *service) Checkout(ctx context.Context, items []cart.Item) (string, error) {
	lines, hasShippable := Partition(items)
	if len(lines) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "no purchasable items: missing external price reference")
	}

	req := pkgstripe.SessionRequest{
		CollectAddress: hasShippable,
		Metadata:       sessionMetadata(lines),
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
	}
	for _, line := range lines {
		req.Lines = append(req.Lines, pkgstripe.SessionLine{
			PriceID:  line.StripePriceID,
			Quantity: int64(line.Quantity),
		})
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout session could not be created")
	}
	return url, nil
}

// sessionMetadata forwards each line's opaque metadata onto the session.
// Later lines win on key collisions; the cart never interprets the values.
func sessionMetadata(lines []LineRequest) map[string]string {
	meta := map[string]string{}
	for _, line := range lines {
		for k, v := range line.Metadata {
			meta[k] = v
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
