package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gruppopolinex/polinex-backend/api/controllers"
	"github.com/gruppopolinex/polinex-backend/api/middleware"
	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	checkoutsvc "github.com/gruppopolinex/polinex-backend/internal/checkout"
	"github.com/gruppopolinex/polinex-backend/internal/contact"
	"github.com/gruppopolinex/polinex-backend/internal/purchase"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
	"github.com/gruppopolinex/polinex-backend/pkg/db"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	"github.com/gruppopolinex/polinex-backend/pkg/metrics"
	pkgredis "github.com/gruppopolinex/polinex-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP pkgredis.Pinger,
	products *catalog.Catalog,
	cartStore *cart.Store,
	cartSync *cart.SyncChannel,
	checkoutService checkoutsvc.Service,
	purchaseService purchase.Service,
	contactService contact.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		metrics.Middleware,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/books", controllers.CatalogList(products.Books))
			r.Get("/courses", controllers.CatalogList(products.Courses))
			r.Get("/locations", controllers.CatalogList(products.Locations))
			r.Get("/software", controllers.CatalogList(products.Software))
			r.Get("/products/{slug}", controllers.CatalogProduct(products, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartStore, logg))
			r.Delete("/", controllers.CartClear(cartStore, logg))
			r.Get("/summary", controllers.CartSummary(cartStore, logg))
			r.Get("/events", controllers.CartEvents(cartSync, logg))
			r.Post("/items", controllers.CartAddItem(cartStore, products, logg))
			r.Patch("/items/{itemId}", controllers.CartSetQuantity(cartStore, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartStore, logg))
		})

		r.Post("/checkout", controllers.Checkout(cartStore, checkoutService, logg))
		r.Get("/purchase", controllers.PurchaseResolve(purchaseService, logg))
		r.Post("/contact", controllers.ContactSubmit(contactService, logg))
	})

	return r
}
