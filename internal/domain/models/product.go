package models

import "time"

// Product is a catalog item. Price is kept in minor currency units (paise).
type Product struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Price        int64      `json:"price"`
	CategoryID   int64      `json:"category_id"`
	CollectionID *int64     `json:"collection_id,omitempty"`
	ImageURL     string     `json:"image_url"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	Variants     []*Variant `json:"variants,omitempty"`
}

// Variant is a size/color combination of a product with its own stock
type Variant struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}
