package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

// CatalogList returns one of the read-only product lists.
func CatalogList(list func() []catalog.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"products": list()})
	}
}

// CatalogProduct resolves a single product by slug.
func CatalogProduct(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug required"))
			return
		}

		product, ok := products.Lookup(slug)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}
