package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/gateway"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// PaymentGateway is the slice of the gateway client the checkout flow needs.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	KeyID() string
}

// CheckoutOrder is returned to the client to open the gateway widget.
type CheckoutOrder struct {
	OrderID        int64  `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// VerifyResult reports the outcome of payment verification.
type VerifyResult struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// CheckoutService sequences checkout: create a remote gateway order plus a
// local pending record, then verify the signed payment callback.
type CheckoutService interface {
	CreateOrder(ctx context.Context, userID, amount int64) (*CheckoutOrder, error)
	VerifyPayment(ctx context.Context, userID int64, gatewayOrderID, gatewayPaymentID, signature string) (*VerifyResult, error)
}

type checkoutService struct {
	log           *slog.Logger
	gateway       PaymentGateway
	orderRepo     storage.OrderStorage
	cartRepo      storage.CartStorage
	gatewaySecret string
	currency      string
}

func NewCheckoutService(log *slog.Logger, gw PaymentGateway, orderRepo storage.OrderStorage, cartRepo storage.CartStorage, gatewaySecret, currency string) CheckoutService {
	return &checkoutService{
		log:           log,
		gateway:       gw,
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		gatewaySecret: gatewaySecret,
		currency:      currency,
	}
}

// CreateOrder registers the checkout with the gateway first and persists the
// local pending order second. A gateway failure leaves no local state. A local
// insert failure leaves an orphaned remote order; there is no reconciler, so
// the gateway order id is logged at Error level for manual follow-up.
func (s *checkoutService) CreateOrder(ctx context.Context, userID, amount int64) (*CheckoutOrder, error) {
	const op = "service.CheckoutService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("amount", amount))

	if amount <= 0 {
		logger.Warn("non-positive amount")
		return nil, fmt.Errorf("%s: amount must be positive: %w", op, ErrInvalidRequest)
	}
	if userID <= 0 {
		logger.Warn("missing user id")
		return nil, fmt.Errorf("%s: user id is required: %w", op, ErrInvalidRequest)
	}

	receipt := "rcpt_" + uuid.NewString()

	gwOrder, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		logger.Error("gateway order creation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("gateway order created", slog.String("gatewayOrderID", gwOrder.ID))

	order := &models.Order{
		UserID:         userID,
		Amount:         amount,
		Currency:       gwOrder.Currency,
		Status:         models.OrderStatusPending,
		GatewayOrderID: gwOrder.ID,
		Receipt:        receipt,
	}
	order, err = s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		// the remote order now exists without a local record; nothing in this
		// codebase reconciles that, so make it loud
		logger.Error("local order insert failed, remote gateway order is orphaned",
			slog.String("gatewayOrderID", gwOrder.ID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
	}

	logger.Info("pending order created", slog.Int64("orderID", order.ID))
	return &CheckoutOrder{
		OrderID:        order.ID,
		GatewayOrderID: gwOrder.ID,
		Amount:         gwOrder.Amount,
		Currency:       gwOrder.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// VerifyPayment recomputes the callback signature and, on a match, flips the
// matching pending order to paid and empties the user's cart. A cart-clear
// failure is logged but does not fail verification: the payment is already
// confirmed, and that correctness outranks cart hygiene.
func (s *checkoutService) VerifyPayment(ctx context.Context, userID int64, gatewayOrderID, gatewayPaymentID, signature string) (*VerifyResult, error) {
	const op = "service.CheckoutService.VerifyPayment"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("gatewayOrderID", gatewayOrderID))

	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		logger.Warn("missing verification fields")
		return nil, fmt.Errorf("%s: order id, payment id and signature are required: %w", op, ErrInvalidRequest)
	}

	if !gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature, s.gatewaySecret) {
		logger.Warn("signature mismatch", slog.String("gatewayPaymentID", gatewayPaymentID))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	orderID, err := s.orderRepo.MarkPaid(ctx, gatewayOrderID, userID, gatewayPaymentID, signature)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			logger.Warn("no pending order for this user and gateway order id")
			return nil, fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
		}
		logger.Error("failed to mark order paid", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to mark order paid: %w", op, err)
	}
	logger.Info("order marked paid", slog.Int64("orderID", orderID))

	if _, err := s.cartRepo.ClearByUserID(ctx, userID); err != nil {
		// payment is confirmed; cart cleanup is best-effort
		logger.Error("failed to clear cart after payment", slog.Any("error", err))
	}

	return &VerifyResult{Success: true, OrderID: orderID}, nil
}
