package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrCollectionNotFound = errors.New("collection not found")
var ErrDuplicateSlug = errors.New("slug already exists")

// CatalogStorage covers the flat reference tables: categories and collections.
type CatalogStorage interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCollections(ctx context.Context) ([]*models.Collection, error)
	CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
}

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogStorage {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name, slug, created_at) VALUES ($1, $2, NOW()) RETURNING id, created_at",
		c.Name, c.Slug,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *catalogRepository) ListCollections(ctx context.Context) ([]*models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug, description, created_at FROM collections ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*models.Collection
	for rows.Next() {
		c := &models.Collection{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *catalogRepository) CreateCollection(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO collections (name, slug, description, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id, created_at",
		c.Name, c.Slug, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return c, nil
}

func (r *catalogRepository) DeleteCollection(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM collections WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}
