package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
)

func newCatalogRouter(t *testing.T) chi.Router {
	t.Helper()
	products := catalog.New()
	logg := testLogger()

	r := chi.NewRouter()
	r.Get("/catalog/books", CatalogList(products.Books))
	r.Get("/catalog/courses", CatalogList(products.Courses))
	r.Get("/catalog/products/{slug}", CatalogProduct(products, logg))
	return r
}

func TestCatalogListBooks(t *testing.T) {
	t.Parallel()
	r := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/catalog/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []catalog.Product `json:"products"`
	}
	decodeData(t, rec, &body)
	require.NotEmpty(t, body.Products)
	assert.Equal(t, "manuale-controllo-gestione", body.Products[0].Slug)
}

func TestCatalogProductBySlug(t *testing.T) {
	t.Parallel()
	r := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/catalog/products/corso-business-plan", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body catalog.Product
	decodeData(t, rec, &body)
	assert.Equal(t, "Corso Online: Costruire un Business Plan", body.Title)
}

func TestCatalogProductUnknownSlug(t *testing.T) {
	t.Parallel()
	r := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/catalog/products/non-esiste", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthReadyReportsDegradedDependencies(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	handler := HealthReady(cfg, testLogger(), &stubPinger{}, &stubPinger{err: errors.New("down")})

	rec := doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeData(t, rec, &body)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["db"])
	assert.Equal(t, "unreachable", body.Checks["redis"])
}

func TestHealthReadyAllHealthy(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	handler := HealthReady(cfg, testLogger(), &stubPinger{}, &stubPinger{})

	rec := doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
