package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/gruppopolinex/polinex-backend/api/routes"
	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/internal/catalog"
	checkoutsvc "github.com/gruppopolinex/polinex-backend/internal/checkout"
	"github.com/gruppopolinex/polinex-backend/internal/contact"
	"github.com/gruppopolinex/polinex-backend/internal/purchase"
	"github.com/gruppopolinex/polinex-backend/pkg/config"
	"github.com/gruppopolinex/polinex-backend/pkg/db"
	"github.com/gruppopolinex/polinex-backend/pkg/db/models"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	pkgredis "github.com/gruppopolinex/polinex-backend/pkg/redis"
	pkgstripe "github.com/gruppopolinex/polinex-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	defer func() {
		err := multierr.Combine(dbClient.Close(), redisClient.Close())
		if err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		err := dbClient.DB().AutoMigrate(&models.ContactMessage{}, &models.PurchaseReceipt{})
		if err != nil {
			logg.Error(context.Background(), "failed to run auto migrations", err)
			os.Exit(1)
		}
	}

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	products := catalog.New()

	cartSync, err := cart.NewSyncChannel(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart sync channel", err)
		os.Exit(1)
	}

	snapshots, err := cart.NewRedisSnapshotStore(redisClient, cfg.Cart.SnapshotTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart snapshot store", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(snapshots, cartSync)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(stripeClient, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	purchaseService, err := purchase.NewService(stripeClient, products, purchase.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(dbClient.DB(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			products,
			cartStore,
			cartSync,
			checkoutService,
			purchaseService,
			contactService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
