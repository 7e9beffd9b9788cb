package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")
var ErrVariantNotFound = errors.New("variant not found")

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug   string
	CollectionSlug string
	Query          string
	Limit          int
	Offset         int
}

// ProductStorage describes catalog reads plus the admin-side writes.
type ProductStorage interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeactivateProduct(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, v *models.Variant) (*models.Variant, error)
	UpdateVariantStock(ctx context.Context, id int64, stock int) error
	DeleteVariant(ctx context.Context, id int64) error
	GetVariantsByProductID(ctx context.Context, productID int64) ([]*models.Variant, error)
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.collection_id, p.image_url, p.active, p.created_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN collections col ON p.collection_id = col.id
		WHERE p.active = TRUE`
	args := []interface{}{}
	idx := 1

	if filter.CategorySlug != "" {
		query += fmt.Sprintf(" AND c.slug = $%d", idx)
		args = append(args, filter.CategorySlug)
		idx++
	}
	if filter.CollectionSlug != "" {
		query += fmt.Sprintf(" AND col.slug = $%d", idx)
		args = append(args, filter.CollectionSlug)
		idx++
	}
	if filter.Query != "" {
		query += fmt.Sprintf(" AND p.name ILIKE $%d", idx)
		args = append(args, "%"+filter.Query+"%")
		idx++
	}

	query += " ORDER BY p.created_at DESC"
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID, &p.CollectionID, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p := &models.Product{}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, price, category_id, collection_id, image_url, active, created_at
		 FROM products WHERE slug = $1 AND active = TRUE`, slug)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID, &p.CollectionID, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variants, err := r.GetVariantsByProductID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p := &models.Product{}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, price, category_id, collection_id, image_url, active, created_at
		 FROM products WHERE id = $1`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID, &p.CollectionID, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, slug, description, price, category_id, collection_id, image_url, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW()) RETURNING id, created_at`,
		p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.CollectionID, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p.Active = true
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, slug = $2, description = $3, price = $4, category_id = $5, collection_id = $6, image_url = $7, active = $8
		 WHERE id = $9`,
		p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.CollectionID, p.ImageURL, p.Active, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeactivateProduct hides the product from the catalog instead of deleting it,
// so existing cart and order rows keep a valid reference.
func (r *productRepository) DeactivateProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE products SET active = FALSE WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) CreateVariant(ctx context.Context, v *models.Variant) (*models.Variant, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO product_variants (product_id, size, color, stock) VALUES ($1, $2, $3, $4) RETURNING id",
		v.ProductID, v.Size, v.Color, v.Stock,
	).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return v, nil
}

func (r *productRepository) UpdateVariantStock(ctx context.Context, id int64, stock int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE product_variants SET stock = $1 WHERE id = $2", stock, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *productRepository) DeleteVariant(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_variants WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *productRepository) GetVariantsByProductID(ctx context.Context, productID int64) ([]*models.Variant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, size, color, stock FROM product_variants WHERE product_id = $1 ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*models.Variant
	for rows.Next() {
		v := &models.Variant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return variants, nil
}
