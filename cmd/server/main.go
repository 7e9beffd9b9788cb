package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/velstra/streetwear-shop/internal/app"
	"github.com/velstra/streetwear-shop/internal/app/handlers"
	"github.com/velstra/streetwear-shop/internal/cache"
	"github.com/velstra/streetwear-shop/internal/config"
	"github.com/velstra/streetwear-shop/internal/gateway"
	"github.com/velstra/streetwear-shop/internal/lib/logger"
	"github.com/velstra/streetwear-shop/internal/lib/logger/handlers/urllog"
	"github.com/velstra/streetwear-shop/internal/lib/metrics"
	"github.com/velstra/streetwear-shop/internal/security/jwtmiddleware"
	"github.com/velstra/streetwear-shop/internal/service"
	"github.com/velstra/streetwear-shop/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(context.Background(), log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	serverMetrics := metrics.NewServerMetrics("storefront")
	router.Use(serverMetrics.Middleware)

	// repositories
	userRepo := storage.NewUserRepository(application.DB)
	addressRepo := storage.NewAddressRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	catalogRepo := storage.NewCatalogRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	wishlistRepo := storage.NewWishlistRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)

	catalogCache := cache.NewCatalogCache(log, application.Redis, cfg.Redis)
	gatewayClient := gateway.NewClient(cfg.Gateway)

	// services
	authService := service.NewAuthService(log, userRepo, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(log, productRepo, catalogRepo, catalogCache)
	cartService := service.NewCartService(log, cartRepo, productRepo)
	wishlistService := service.NewWishlistService(log, wishlistRepo, productRepo)
	checkoutService := service.NewCheckoutService(log, gatewayClient, orderRepo, cartRepo, cfg.Gateway.KeySecret, cfg.Gateway.Currency)
	orderService := service.NewOrderService(log, orderRepo)
	profileService := service.NewProfileService(log, userRepo, addressRepo)

	// public endpoints
	router.Post("/api/auth/register", handlers.RegisterHandler(log, authService))
	router.Post("/api/auth/login", handlers.LoginHandler(log, authService))
	router.Get("/api/products", handlers.ListProductsHandler(log, catalogService))
	router.Get("/api/products/{slug}", handlers.GetProductHandler(log, catalogService))
	router.Get("/api/categories", handlers.ListCategoriesHandler(log, catalogService))
	router.Get("/api/collections", handlers.ListCollectionsHandler(log, catalogService))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics.Handler())

	// authenticated endpoints
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)

		r.Get("/api/profile", handlers.GetProfileHandler(log, profileService))
		r.Put("/api/profile", handlers.UpdateProfileHandler(log, profileService))
		r.Get("/api/addresses", handlers.GetAddressesHandler(log, profileService))
		r.Post("/api/addresses", handlers.AddAddressHandler(log, profileService))
		r.Delete("/api/addresses/{id}", handlers.DeleteAddressHandler(log, profileService))

		r.Get("/api/cart", handlers.GetCartHandler(log, cartService))
		r.Post("/api/cart", handlers.AddToCartHandler(log, cartService))
		r.Put("/api/cart/{id}", handlers.UpdateCartItemHandler(log, cartService))
		r.Delete("/api/cart/{id}", handlers.RemoveCartItemHandler(log, cartService))
		r.Delete("/api/cart", handlers.ClearCartHandler(log, cartService))

		r.Get("/api/wishlist", handlers.GetWishlistHandler(log, wishlistService))
		r.Post("/api/wishlist", handlers.AddWishlistHandler(log, wishlistService))
		r.Delete("/api/wishlist/{productId}", handlers.RemoveWishlistHandler(log, wishlistService))

		r.Post("/api/checkout/order", handlers.CreateOrderHandler(log, checkoutService))
		r.Post("/api/checkout/verify", handlers.VerifyPaymentHandler(log, checkoutService))

		r.Get("/api/orders", handlers.GetOrdersHandler(log, orderService))
		r.Get("/api/orders/{id}", handlers.GetOrderHandler(log, orderService))

		// admin panel: catalog management + full order list
		r.Group(func(ar chi.Router) {
			ar.Use(jwtmiddleware.RequireAdmin)

			ar.Post("/api/admin/products", handlers.CreateProductHandler(log, catalogService))
			ar.Put("/api/admin/products/{id}", handlers.UpdateProductHandler(log, catalogService))
			ar.Delete("/api/admin/products/{id}", handlers.DeleteProductHandler(log, catalogService))
			ar.Post("/api/admin/variants", handlers.CreateVariantHandler(log, catalogService))
			ar.Put("/api/admin/variants/{id}/stock", handlers.UpdateVariantStockHandler(log, catalogService))
			ar.Delete("/api/admin/variants/{id}", handlers.DeleteVariantHandler(log, catalogService))
			ar.Post("/api/admin/categories", handlers.CreateCategoryHandler(log, catalogService))
			ar.Delete("/api/admin/categories/{id}", handlers.DeleteCategoryHandler(log, catalogService))
			ar.Post("/api/admin/collections", handlers.CreateCollectionHandler(log, catalogService))
			ar.Delete("/api/admin/collections/{id}", handlers.DeleteCollectionHandler(log, catalogService))
			ar.Get("/api/admin/orders", handlers.AdminListOrdersHandler(log, orderService))
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
