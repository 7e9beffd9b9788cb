package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// WishlistService manages per-user saved products.
type WishlistService interface {
	GetWishlist(ctx context.Context, userID int64) ([]*models.WishlistItem, error)
	// AddItem is idempotent: saving an already saved product succeeds.
	AddItem(ctx context.Context, userID, productID int64) error
	RemoveItem(ctx context.Context, userID, productID int64) error
}

type wishlistService struct {
	log          *slog.Logger
	wishlistRepo storage.WishlistStorage
	productRepo  storage.ProductStorage
}

func NewWishlistService(log *slog.Logger, wishlistRepo storage.WishlistStorage, productRepo storage.ProductStorage) WishlistService {
	return &wishlistService{
		log:          log,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID int64) ([]*models.WishlistItem, error) {
	const op = "service.WishlistService.GetWishlist"

	items, err := s.wishlistRepo.GetItemsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get wishlist", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *wishlistService) AddItem(ctx context.Context, userID, productID int64) error {
	const op = "service.WishlistService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		logger.Error("failed to get product", slog.Any("error", err))
		return fmt.Errorf("%s: failed to get product: %w", op, err)
	}

	if err := s.wishlistRepo.AddItem(ctx, userID, productID); err != nil {
		logger.Error("failed to add wishlist item", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *wishlistService) RemoveItem(ctx context.Context, userID, productID int64) error {
	const op = "service.WishlistService.RemoveItem"

	if err := s.wishlistRepo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrWishlistItemNotFound)
		}
		s.log.Error("failed to remove wishlist item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
