package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/velstra/streetwear-shop/internal/domain/models"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressStorage describes access to a user's saved shipping addresses.
type AddressStorage interface {
	CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	GetAddressesByUserID(ctx context.Context, userID int64) ([]*models.Address, error)
	DeleteAddress(ctx context.Context, id, userID int64) error
}

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) AddressStorage {
	return &addressRepository{db: db}
}

func (r *addressRepository) CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	// a new default address demotes the previous one
	if addr.IsDefault {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE addresses SET is_default = FALSE WHERE user_id = $1", addr.UserID); err != nil {
			return nil, fmt.Errorf("failed to reset default address: %w", err)
		}
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO addresses (user_id, line1, line2, city, state, postal_code, phone, is_default, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id, created_at`,
		addr.UserID, addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Phone, addr.IsDefault,
	).Scan(&addr.ID, &addr.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return addr, nil
}

func (r *addressRepository) GetAddressesByUserID(ctx context.Context, userID int64) ([]*models.Address, error) {
	query := `
		SELECT id, user_id, line1, line2, city, state, postal_code, phone, is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []*models.Address
	for rows.Next() {
		a := &models.Address{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State, &a.PostalCode, &a.Phone, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
