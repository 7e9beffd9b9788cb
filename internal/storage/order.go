package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage describes local order records keyed to gateway order ids.
type OrderStorage interface {
	// CreateOrder inserts a pending order and fills in its id and timestamps.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// MarkPaid flips exactly one pending order to paid, matched by BOTH the
	// gateway order id and the owning user, and returns its local id.
	// ErrOrderNotFound means no such pending order exists for this user.
	MarkPaid(ctx context.Context, gatewayOrderID string, userID int64, paymentID, signature string) (int64, error)
	GetOrderByID(ctx context.Context, id, userID int64) (*models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (user_id, amount, currency, status, gateway_order_id, receipt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.Amount, order.Currency, order.Status, order.GatewayOrderID, order.Receipt,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// MarkPaid is the sole writer of the pending -> paid transition. The predicate
// keeps one user from confirming another user's order even with a matching
// gateway order id, and the status filter makes the transition one-way.
func (r *orderRepository) MarkPaid(ctx context.Context, gatewayOrderID string, userID int64, paymentID, signature string) (int64, error) {
	var id int64
	query := `
		UPDATE orders
		SET status = $1, gateway_payment_id = $2, gateway_signature = $3, updated_at = NOW()
		WHERE gateway_order_id = $4 AND user_id = $5 AND status = $6
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		models.OrderStatusPaid, paymentID, signature, gatewayOrderID, userID, models.OrderStatusPending,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return id, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id, userID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, amount, currency, status, gateway_order_id, gateway_payment_id, gateway_signature, receipt, created_at, updated_at
		FROM orders WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	if err := scanOrder(row, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, amount, currency, status, gateway_order_id, gateway_payment_id, gateway_signature, receipt, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListOrders returns all orders regardless of owner; admin panel only.
func (r *orderRepository) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	query := `
		SELECT id, user_id, amount, currency, status, gateway_order_id, gateway_payment_id, gateway_signature, receipt, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner, order *models.Order) error {
	return row.Scan(&order.ID, &order.UserID, &order.Amount, &order.Currency, &order.Status,
		&order.GatewayOrderID, &order.GatewayPaymentID, &order.GatewaySignature, &order.Receipt,
		&order.CreatedAt, &order.UpdatedAt)
}

func collectOrders(rows *sql.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
