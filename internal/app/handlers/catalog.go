package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/velstra/streetwear-shop/internal/service"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// ListProductsHandler handles GET /api/products with optional
// category, collection, q, limit and offset query parameters.
func ListProductsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		filter := storage.ProductFilter{
			CategorySlug:   q.Get("category"),
			CollectionSlug: q.Get("collection"),
			Query:          q.Get("q"),
			Limit:          limit,
			Offset:         offset,
		}

		products, err := catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, products)
	}
}

// GetProductHandler handles GET /api/products/{slug}
func GetProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			http.Error(w, "slug parameter is required", http.StatusBadRequest)
			return
		}

		product, err := catalogService.GetProduct(r.Context(), slug)
		if err != nil {
			logger.Error("failed to get product", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, product)
	}
}

// ListCategoriesHandler handles GET /api/categories
func ListCategoriesHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := catalogService.ListCategories(r.Context())
		if err != nil {
			logger.Error("failed to list categories", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, categories)
	}
}

// ListCollectionsHandler handles GET /api/collections
func ListCollectionsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCollectionsHandler"
		logger := log.With(slog.String("op", op))

		collections, err := catalogService.ListCollections(r.Context())
		if err != nil {
			logger.Error("failed to list collections", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, collections)
	}
}
