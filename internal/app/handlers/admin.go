package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/service"
)

// ProductRequest is the admin payload for creating or updating a product.
// Price is in minor currency units.
type ProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" validate:"required,gt=0"`
	CategoryID   int64  `json:"categoryId" validate:"required,gt=0"`
	CollectionID *int64 `json:"collectionId,omitempty"`
	ImageURL     string `json:"imageUrl"`
	Active       *bool  `json:"active,omitempty"`
}

// VariantRequest adds a size/color combination to a product
type VariantRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color"`
	Stock     int    `json:"stock" validate:"gte=0"`
}

// StockRequest sets the stock of a variant
type StockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// CategoryRequest creates a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// CollectionRequest creates a collection
type CollectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
}

func decodeValid(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Error("invalid request: decoding error", slog.Any("error", err))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(req); err != nil {
		logger.Error("invalid request: validation error", slog.Any("error", err))
		http.Error(w, "validation error", http.StatusBadRequest)
		return false
	}
	return true
}

// CreateProductHandler handles POST /api/admin/products
func CreateProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		product := &models.Product{
			Name:         req.Name,
			Slug:         req.Slug,
			Description:  req.Description,
			Price:        req.Price,
			CategoryID:   req.CategoryID,
			CollectionID: req.CollectionID,
			ImageURL:     req.ImageURL,
		}
		created, err := catalogService.CreateProduct(r.Context(), product)
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, created)
	}
}

// UpdateProductHandler handles PUT /api/admin/products/{id}
func UpdateProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req ProductRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}
		product := &models.Product{
			ID:           productID,
			Name:         req.Name,
			Slug:         req.Slug,
			Description:  req.Description,
			Price:        req.Price,
			CategoryID:   req.CategoryID,
			CollectionID: req.CollectionID,
			ImageURL:     req.ImageURL,
			Active:       active,
		}
		if err := catalogService.UpdateProduct(r.Context(), product); err != nil {
			logger.Error("failed to update product", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteProductHandler handles DELETE /api/admin/products/{id}
// (soft delete: the product is deactivated, not removed)
func DeleteProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		if err := catalogService.DeactivateProduct(r.Context(), productID); err != nil {
			logger.Error("failed to deactivate product", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateVariantHandler handles POST /api/admin/variants
func CreateVariantHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateVariantHandler"
		logger := log.With(slog.String("op", op))

		var req VariantRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		variant := &models.Variant{
			ProductID: req.ProductID,
			Size:      req.Size,
			Color:     req.Color,
			Stock:     req.Stock,
		}
		created, err := catalogService.CreateVariant(r.Context(), variant)
		if err != nil {
			logger.Error("failed to create variant", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, created)
	}
}

// UpdateVariantStockHandler handles PUT /api/admin/variants/{id}/stock
func UpdateVariantStockHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateVariantStockHandler"
		logger := log.With(slog.String("op", op))

		variantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid variant id", http.StatusBadRequest)
			return
		}

		var req StockRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		if err := catalogService.UpdateVariantStock(r.Context(), variantID, req.Stock); err != nil {
			logger.Error("failed to update variant stock", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteVariantHandler handles DELETE /api/admin/variants/{id}
func DeleteVariantHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteVariantHandler"
		logger := log.With(slog.String("op", op))

		variantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid variant id", http.StatusBadRequest)
			return
		}

		if err := catalogService.DeleteVariant(r.Context(), variantID); err != nil {
			logger.Error("failed to delete variant", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateCategoryHandler handles POST /api/admin/categories
func CreateCategoryHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req CategoryRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		created, err := catalogService.CreateCategory(r.Context(), &models.Category{Name: req.Name, Slug: req.Slug})
		if err != nil {
			logger.Error("failed to create category", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, created)
	}
}

// DeleteCategoryHandler handles DELETE /api/admin/categories/{id}
func DeleteCategoryHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		categoryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		if err := catalogService.DeleteCategory(r.Context(), categoryID); err != nil {
			logger.Error("failed to delete category", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateCollectionHandler handles POST /api/admin/collections
func CreateCollectionHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCollectionHandler"
		logger := log.With(slog.String("op", op))

		var req CollectionRequest
		if !decodeValid(w, r, logger, &req) {
			return
		}

		created, err := catalogService.CreateCollection(r.Context(), &models.Collection{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		})
		if err != nil {
			logger.Error("failed to create collection", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusCreated, created)
	}
}

// DeleteCollectionHandler handles DELETE /api/admin/collections/{id}
func DeleteCollectionHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCollectionHandler"
		logger := log.With(slog.String("op", op))

		collectionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid collection id", http.StatusBadRequest)
			return
		}

		if err := catalogService.DeleteCollection(r.Context(), collectionID); err != nil {
			logger.Error("failed to delete collection", slog.Any("error", err))
			writeError(w, logger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
