package purchase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	"github.com/gruppopolinex/polinex-backend/pkg/db/models"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	pkgstripe "github.com/gruppopolinex/polinex-backend/pkg/stripe"
)

// Gateway resolves a session reference back to payment status and metadata.
type Gateway interface {
	RetrieveSession(ctx context.Context, sessionID string) (*pkgstripe.SessionDetails, error)
}

// CatalogLookup resolves a product slug to catalog data.
type CatalogLookup interface {
	Lookup(slug string) (catalog.Product, bool)
}

// ReceiptItem is one resolved purchase line on the thank-you page.
type ReceiptItem struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Service reconciles a checkout session reference into a receipt.
type Service interface {
	Resolve(ctx context.Context, sessionID string) ([]ReceiptItem, error)
}

type service struct {
	gateway  Gateway
	products CatalogLookup
	receipts ReceiptRepository
	logg     *logger.Logger
}

// NewService builds the purchase resolver.
func NewService(gateway Gateway, products CatalogLookup, receipts ReceiptRepository, logg *logger.Logger) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &service{gateway: gateway, products: products, receipts: receipts, logg: logg}, nil
}

// Resolve walks the session through payment verification, metadata lookup and
// catalog resolution. Every failed step short-circuits with a coded error; a
// catalog miss degrades to the raw slug instead of failing.
func (s *service) Resolve(ctx context.Context, sessionID string) ([]ReceiptItem, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id missing")
	}

	details, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retrieve checkout session")
	}

	if details.PaymentStatus != pkgstripe.PaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment not valid")
	}

	slug := strings.TrimSpace(details.Metadata["slug"])
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "identifier missing from session metadata")
	}

	title := slug
	if product, ok := s.products.Lookup(slug); ok {
		title = product.Title
	}

	if s.receipts != nil {
		receipt := &models.PurchaseReceipt{
			SessionID:   sessionID,
			ProductSlug: slug,
			Title:       title,
		}
		if err := s.receipts.Record(ctx, receipt); err != nil && s.logg != nil {
			// The receipt row is bookkeeping; the buyer still gets their page.
			s.logg.Error(s.logg.WithSessionID(ctx, sessionID), "record purchase receipt", err)
		}
	}

	return []ReceiptItem{{Slug: slug, Title: title}}, nil
}
