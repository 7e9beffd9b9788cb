package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistStorage describes per-user saved products.
type WishlistStorage interface {
	// AddItem is idempotent: adding an already saved product is a no-op
	// reported as success.
	AddItem(ctx context.Context, userID, productID int64) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	GetItemsByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error)
}

type wishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) WishlistStorage {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlist_items (user_id, product_id, created_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2", userID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

func (r *wishlistRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error) {
	query := `
		SELECT wi.id, wi.user_id, wi.product_id, p.name, p.price, p.image_url, wi.created_at
		FROM wishlist_items wi
		JOIN products p ON wi.product_id = p.id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.WishlistItem
	for rows.Next() {
		item := &models.WishlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
