package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/api/validators"
	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

type cartResponse struct {
	Items []cart.Item     `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func newCartResponse(items []cart.Item) cartResponse {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.LineTotal())
	}
	return cartResponse{Items: items, Count: count, Total: total}
}

// CartFetch returns the caller's current cart snapshot.
func CartFetch(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.Items(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

type addItemRequest struct {
	Slug     string  `json:"slug" validate:"required"`
	Quantity float64 `json:"quantity"`
}

// CartAddItem adds a catalog product to the cart. Lines are priced from the
// catalog, never from the request.
func CartAddItem(store *cart.Store, products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.Lookup(req.Slug)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		item := product.CartItem(cart.ClampQuantity(req.Quantity))
		if err := store.AddItem(r.Context(), token, item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.Items(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(items))
	}
}

type setQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// CartSetQuantity overwrites one line's quantity. Unknown line ids are a
// silent no-op, mirroring the store contract.
func CartSetQuantity(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id required"))
			return
		}

		var req setQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.SetQuantity(r.Context(), token, itemID, req.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.Items(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id required"))
			return
		}

		if err := store.RemoveItem(r.Context(), token, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.Items(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// CartClear empties the caller's cart.
func CartClear(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse([]cart.Item{}))
	}
}

// CartSummary returns count and total for the nav badge.
func CartSummary(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := store.Count(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := store.Total(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"count": count,
			"total": total,
		})
	}
}

// CartEvents streams payload-free change triggers over SSE. The stream is a
// trigger, not a data carrier: clients re-fetch the cart on every event.
func CartEvents(sync *cart.SyncChannel, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		ctx := r.Context()

		triggers := make(chan struct{}, 1)
		unsubscribe := sync.Subscribe(token, func() {
			select {
			case triggers <- struct{}{}:
			default:
			}
		})
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		fmt.Fprint(w, "event: ready\ndata: {}\n\n")
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return
			case <-triggers:
				fmt.Fprint(w, "event: change\ndata: {}\n\n")
				flusher.Flush()
			}
		}
	}
}
