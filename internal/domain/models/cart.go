package models

import "time"

// CartItem is a single (user, product, variant) row in the cart.
// ProductName, UnitPrice and variant fields are filled via JOIN on reads.
type CartItem struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ProductID   int64     `json:"product_id"`
	VariantID   *int64    `json:"variant_id,omitempty"`
	Quantity    int       `json:"quantity"`
	ProductName string    `json:"product_name,omitempty"`
	UnitPrice   int64     `json:"unit_price,omitempty"`
	Size        string    `json:"size,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
