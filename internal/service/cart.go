package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// Cart is the user's cart with totals computed from the joined rows.
type Cart struct {
	Items []*models.CartItem `json:"items"`
	Total int64              `json:"total"`
}

// CartService wraps cart row access with product validation.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*Cart, error)
	AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) (*models.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	log         *slog.Logger
	cartRepo    storage.CartStorage
	productRepo storage.ProductStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, productRepo storage.ProductStorage) CartService {
	return &cartService{
		log:         log,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	const op = "service.CartService.GetCart"

	items, err := s.cartRepo.GetItemsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get cart items", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cart := &Cart{Items: items}
	for _, item := range items {
		cart.Total += item.UnitPrice * int64(item.Quantity)
	}
	return cart, nil
}

// AddItem validates the product (and variant, when given) before the upsert.
// An existing (user, product, variant) row gets its quantity incremented by
// the requested amount; otherwise a new row is inserted.
func (s *cartService) AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if quantity < 1 {
		return nil, fmt.Errorf("%s: quantity must be at least 1: %w", op, ErrInvalidRequest)
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		logger.Error("failed to get product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}
	if !product.Active {
		return nil, fmt.Errorf("%s: product is not available: %w", op, storage.ErrProductNotFound)
	}

	if variantID != nil {
		variants, err := s.productRepo.GetVariantsByProductID(ctx, productID)
		if err != nil {
			logger.Error("failed to get variants", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get variants: %w", op, err)
		}
		found := false
		for _, v := range variants {
			if v.ID == *variantID {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: variant does not belong to product: %w", op, ErrInvalidRequest)
		}
	}

	item, err := s.cartRepo.AddItem(ctx, userID, productID, variantID, quantity)
	if err != nil {
		logger.Error("failed to add cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("cart item added", slog.Int64("itemID", item.ID), slog.Int("quantity", item.Quantity))
	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	const op = "service.CartService.UpdateItem"

	if quantity < 1 {
		return fmt.Errorf("%s: quantity must be at least 1: %w", op, ErrInvalidRequest)
	}
	if err := s.cartRepo.UpdateQuantity(ctx, itemID, userID, quantity); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCartItemNotFound)
		}
		s.log.Error("failed to update cart item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	const op = "service.CartService.RemoveItem"

	if err := s.cartRepo.DeleteItem(ctx, itemID, userID); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCartItemNotFound)
		}
		s.log.Error("failed to delete cart item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	const op = "service.CartService.Clear"

	if _, err := s.cartRepo.ClearByUserID(ctx, userID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
