package controllers

import (
	"net/http"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/internal/checkout"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

// Checkout hands the caller's cart snapshot to the payment gateway and
// returns the redirect URL. The cart itself is left untouched; it is only
// cleared after a confirmed payment, which happens elsewhere in the flow.
func Checkout(store *cart.Store, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCartToken(ctx, token)
		}

		items, err := store.Items(ctx, token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		url, err := svc.Checkout(ctx, items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}
