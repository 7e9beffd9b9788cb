package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// OrderService serves order history: a user's own orders, plus the admin view.
type OrderService interface {
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	GetOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{log: log, orderRepo: orderRepo}
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
		}
		s.log.Error("failed to get order", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.GetOrders"

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	const op = "service.OrderService.ListAllOrders"

	orders, err := s.orderRepo.ListOrders(ctx, limit, offset)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
