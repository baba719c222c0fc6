package controllers

import (
	"net/http"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/internal/purchase"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

// PurchaseResolve reconciles a checkout session reference into a receipt for
// the thank-you page. Callers retry by reloading; there is no server retry.
func PurchaseResolve(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		sessionID := r.URL.Query().Get("session_id")

		ctx := r.Context()
		if logg != nil && sessionID != "" {
			ctx = logg.WithSessionID(ctx, sessionID)
		}

		items, err := svc.Resolve(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}
