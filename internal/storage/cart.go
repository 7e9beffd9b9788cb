package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStorage describes per-user cart rows. Every operation is a single
// statement; there is no cross-row transaction.
type CartStorage interface {
	// AddItem inserts a (user, product, variant) row or increments the
	// quantity of the existing one by the given delta.
	AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id, userID int64, quantity int) error
	DeleteItem(ctx context.Context, id, userID int64) error
	GetItemsByUserID(ctx context.Context, userID int64) ([]*models.CartItem, error)
	// ClearByUserID removes all cart rows for the user, returning the number
	// of rows deleted.
	ClearByUserID(ctx context.Context, userID int64) (int64, error)
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

// AddItem relies on the unique index over (user_id, product_id,
// COALESCE(variant_id, 0)) so the increment happens inside one statement.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{UserID: userID, ProductID: productID, VariantID: variantID}
	query := `
		INSERT INTO cart_items (user_id, product_id, variant_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, product_id, (COALESCE(variant_id, 0)))
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, userID, productID, variantID, quantity).
		Scan(&item.ID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3",
		quantity, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// GetItemsByUserID joins product and variant data so the response carries
// names and unit prices alongside quantities.
func (r *cartRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.variant_id, ci.quantity,
		       p.name, p.price, COALESCE(v.size, ''), COALESCE(v.color, ''),
		       ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		LEFT JOIN product_variants v ON ci.variant_id = v.id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.VariantID, &item.Quantity,
			&item.ProductName, &item.UnitPrice, &item.Size, &item.Color,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) ClearByUserID(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return res.RowsAffected()
}
