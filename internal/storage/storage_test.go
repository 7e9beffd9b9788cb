package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

func TestGetUserByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "email", "pass_hash", "name", "phone", "is_admin", "created_at"}).
		AddRow(1, "test@example.com", []byte("hashed-password"), "Test", "", false, time.Now())

	mock.ExpectQuery("SELECT id, email, pass_hash, name, phone, is_admin, created_at FROM users WHERE email = \\$1").
		WithArgs("test@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByEmail(ctx, "test@example.com")
	assert.NoError(t, err, "Expected no error when user is found")
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, []byte("hashed-password"), user.PassHash)
	assert.False(t, user.IsAdmin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "pass_hash", "name", "phone", "is_admin", "created_at"})
	mock.ExpectQuery("SELECT id, email, pass_hash, name, phone, is_admin, created_at FROM users WHERE email = \\$1").
		WithArgs("missing@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("dup@example.com", []byte("hash"), "", "", false).
		WillReturnError(&pq.Error{Code: "23505"})

	user, err := repo.CreateUser(context.Background(), &models.User{
		Email:    "dup@example.com",
		PassHash: []byte("hash"),
	})
	assert.ErrorIs(t, err, storage.ErrUserExists)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddItem_UpsertIncrements(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	ctx := context.Background()
	now := time.Now()

	// the ON CONFLICT upsert returns the incremented quantity for an
	// existing (user, product, variant) row
	rows := sqlmock.NewRows([]string{"id", "quantity", "created_at", "updated_at"}).
		AddRow(7, 5, now, now)

	mock.ExpectQuery("(?s)INSERT INTO cart_items.+ON CONFLICT \\(user_id, product_id, \\(COALESCE\\(variant_id, 0\\)\\)\\)").
		WithArgs(int64(1), int64(10), nil, 3).
		WillReturnRows(rows)

	item, err := repo.AddItem(ctx, 1, 10, nil, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, 5, item.Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartUpdateQuantity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3")).
		WithArgs(3, int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateQuantity(context.Background(), 99, 1, 3)
	assert.ErrorIs(t, err, storage.ErrCartItemNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartClearByUserID_ReturnsDeletedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ClearByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistAddItem_IgnoresConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWishlistRepository(db)

	// DO NOTHING on conflict means zero rows affected is still success
	mock.ExpectExec("(?s)INSERT INTO wishlist_items.+ON CONFLICT \\(user_id, product_id\\) DO NOTHING").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AddItem(context.Background(), 1, 10)
	assert.NoError(t, err, "Re-adding a saved product must succeed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now)
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), int64(499900), "INR", models.OrderStatusPending, "order_abc", "rcpt_x").
		WillReturnRows(rows)

	order, err := repo.CreateOrder(context.Background(), &models.Order{
		UserID:         1,
		Amount:         499900,
		Currency:       "INR",
		Status:         models.OrderStatusPending,
		GatewayOrderID: "order_abc",
		Receipt:        "rcpt_x",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderMarkPaid_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow(42)
	mock.ExpectQuery("UPDATE orders").
		WithArgs(models.OrderStatusPaid, "pay_123", "sig", "order_abc", int64(1), models.OrderStatusPending).
		WillReturnRows(rows)

	id, err := repo.MarkPaid(context.Background(), "order_abc", 1, "pay_123", "sig")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderMarkPaid_NoPendingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	// wrong user, already paid, or unknown gateway order id: no row matches
	rows := sqlmock.NewRows([]string{"id"})
	mock.ExpectQuery("UPDATE orders").
		WithArgs(models.OrderStatusPaid, "pay_123", "sig", "order_abc", int64(2), models.OrderStatusPending).
		WillReturnRows(rows)

	id, err := repo.MarkPaid(context.Background(), "order_abc", 2, "pay_123", "sig")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.Zero(t, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderMarkPaid_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(models.OrderStatusPaid, "pay_123", "sig", "order_abc", int64(1), models.OrderStatusPending).
		WillReturnError(errors.New("db error"))

	_, err = repo.MarkPaid(context.Background(), "order_abc", 1, "pay_123", "sig")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetBySlug_LoadsVariants(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	productRows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "price", "category_id", "collection_id", "image_url", "active", "created_at"}).
		AddRow(10, "Oversized Hoodie", "oversized-hoodie", "", 249900, 1, nil, "", true, time.Now())
	mock.ExpectQuery("SELECT id, name, slug, description, price, category_id, collection_id, image_url, active, created_at\\s+FROM products WHERE slug = \\$1 AND active = TRUE").
		WithArgs("oversized-hoodie").WillReturnRows(productRows)

	variantRows := sqlmock.NewRows([]string{"id", "product_id", "size", "color", "stock"}).
		AddRow(1, 10, "M", "black", 5).
		AddRow(2, 10, "L", "black", 0)
	mock.ExpectQuery("SELECT id, product_id, size, color, stock FROM product_variants WHERE product_id = \\$1").
		WithArgs(int64(10)).WillReturnRows(variantRows)

	product, err := repo.GetProductBySlug(context.Background(), "oversized-hoodie")
	assert.NoError(t, err)
	assert.Equal(t, int64(249900), product.Price)
	assert.Len(t, product.Variants, 2)
	assert.Equal(t, "M", product.Variants[0].Size)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetBySlug_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "price", "category_id", "collection_id", "image_url", "active", "created_at"})
	mock.ExpectQuery("FROM products WHERE slug = \\$1 AND active = TRUE").
		WithArgs("ghost").WillReturnRows(rows)

	product, err := repo.GetProductBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}
