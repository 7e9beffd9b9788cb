package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velstra/streetwear-shop/internal/cache"
	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// CatalogService serves public catalog reads (through the redis cache) and the
// admin panel writes (which invalidate it).
type CatalogService interface {
	ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListCollections(ctx context.Context) ([]*models.Collection, error)

	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeactivateProduct(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, v *models.Variant) (*models.Variant, error)
	UpdateVariantStock(ctx context.Context, id int64, stock int) error
	DeleteVariant(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
	catalogRepo storage.CatalogStorage
	cache       *cache.CatalogCache // nil disables caching
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage, catalogRepo storage.CatalogStorage, catalogCache *cache.CatalogCache) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		cache:       catalogCache,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	if s.cache != nil {
		if p, ok := s.cache.GetProduct(ctx, slug); ok {
			return p, nil
		}
	}

	product, err := s.productRepo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to get product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, product)
	}
	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"

	if s.cache != nil {
		if categories, ok := s.cache.GetCategories(ctx); ok {
			return categories, nil
		}
	}

	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		s.cache.SetCategories(ctx, categories)
	}
	return categories, nil
}

func (s *catalogService) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	const op = "service.CatalogService.ListCollections"

	if s.cache != nil {
		if collections, ok := s.cache.GetCollections(ctx); ok {
			return collections, nil
		}
	}

	collections, err := s.catalogRepo.ListCollections(ctx)
	if err != nil {
		s.log.Error("failed to list collections", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		s.cache.SetCollections(ctx, collections)
	}
	return collections, nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	const op = "service.CatalogService.CreateProduct"
	logger := s.log.With(slog.String("op", op), slog.String("slug", p.Slug))

	if p.Name == "" || p.Slug == "" || p.Price <= 0 || p.CategoryID == 0 {
		return nil, fmt.Errorf("%s: name, slug, positive price and category are required: %w", op, ErrInvalidRequest)
	}

	product, err := s.productRepo.CreateProduct(ctx, p)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	logger.Info("product created", slog.Int64("productID", product.ID))
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	const op = "service.CatalogService.UpdateProduct"

	if p.ID == 0 || p.Name == "" || p.Slug == "" || p.Price <= 0 {
		return fmt.Errorf("%s: id, name, slug and positive price are required: %w", op, ErrInvalidRequest)
	}
	if err := s.productRepo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to update product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeactivateProduct"

	if err := s.productRepo.DeactivateProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to deactivate product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) CreateVariant(ctx context.Context, v *models.Variant) (*models.Variant, error) {
	const op = "service.CatalogService.CreateVariant"

	if v.ProductID == 0 || v.Size == "" {
		return nil, fmt.Errorf("%s: product id and size are required: %w", op, ErrInvalidRequest)
	}
	if _, err := s.productRepo.GetProductByID(ctx, v.ProductID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	variant, err := s.productRepo.CreateVariant(ctx, v)
	if err != nil {
		s.log.Error("failed to create variant", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return variant, nil
}

func (s *catalogService) UpdateVariantStock(ctx context.Context, id int64, stock int) error {
	const op = "service.CatalogService.UpdateVariantStock"

	if stock < 0 {
		return fmt.Errorf("%s: stock cannot be negative: %w", op, ErrInvalidRequest)
	}
	if err := s.productRepo.UpdateVariantStock(ctx, id, stock); err != nil {
		if errors.Is(err, storage.ErrVariantNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrVariantNotFound)
		}
		s.log.Error("failed to update variant stock", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) DeleteVariant(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteVariant"

	if err := s.productRepo.DeleteVariant(ctx, id); err != nil {
		if errors.Is(err, storage.ErrVariantNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrVariantNotFound)
		}
		s.log.Error("failed to delete variant", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	const op = "service.CatalogService.CreateCategory"

	if c.Name == "" || c.Slug == "" {
		return nil, fmt.Errorf("%s: name and slug are required: %w", op, ErrInvalidRequest)
	}
	category, err := s.catalogRepo.CreateCategory(ctx, c)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		s.log.Error("failed to create category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteCategory"

	if err := s.catalogRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCategoryNotFound)
		}
		s.log.Error("failed to delete category", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	const op = "service.CatalogService.CreateCollection"

	if c.Name == "" || c.Slug == "" {
		return nil, fmt.Errorf("%s: name and slug are required: %w", op, ErrInvalidRequest)
	}
	collection, err := s.catalogRepo.CreateCollection(ctx, c)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateSlug)
		}
		s.log.Error("failed to create collection", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return collection, nil
}

func (s *catalogService) DeleteCollection(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteCollection"

	if err := s.catalogRepo.DeleteCollection(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCollectionNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCollectionNotFound)
		}
		s.log.Error("failed to delete collection", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)
	return nil
}
