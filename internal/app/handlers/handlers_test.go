package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/velstra/streetwear-shop/internal/app/handlers"
	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/gateway"
	"github.com/velstra/streetwear-shop/internal/security/jwtmiddleware"
	"github.com/velstra/streetwear-shop/internal/service"
	"github.com/velstra/streetwear-shop/internal/storage"
)

type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	return f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.err
}

type fakeCheckoutService struct {
	order     *service.CheckoutOrder
	result    *service.VerifyResult
	err       error
	gotUserID int64
}

func (f *fakeCheckoutService) CreateOrder(ctx context.Context, userID, amount int64) (*service.CheckoutOrder, error) {
	f.gotUserID = userID
	return f.order, f.err
}

func (f *fakeCheckoutService) VerifyPayment(ctx context.Context, userID int64, gatewayOrderID, gatewayPaymentID, signature string) (*service.VerifyResult, error) {
	f.gotUserID = userID
	return f.result, f.err
}

type fakeCartService struct {
	cart *service.Cart
	item *models.CartItem
	err  error
}

func (f *fakeCartService) GetCart(ctx context.Context, userID int64) (*service.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCartService) AddItem(ctx context.Context, userID, productID int64, variantID *int64, quantity int) (*models.CartItem, error) {
	return f.item, f.err
}

func (f *fakeCartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	return f.err
}

func (f *fakeCartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return f.err
}

func (f *fakeCartService) Clear(ctx context.Context, userID int64) error {
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// withUser attaches an authenticated user id the way the JWT middleware does.
func withUser(req *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(req.Context(), jwtmiddleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestRegisterHandler_Success(t *testing.T) {
	handler := handlers.RegisterHandler(testLogger(), &fakeAuthService{token: "test-token"})

	reqBody := `{"email": "test@example.com", "password": "password123", "name": "Test"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code, "Expected status 201 Created")

	var resp handlers.AuthResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	handler := handlers.RegisterHandler(testLogger(), &fakeAuthService{err: storage.ErrUserExists})

	reqBody := `{"email": "dup@example.com", "password": "password123", "name": "Test"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code, "Expected status 409 for a taken email")
}

func TestRegisterHandler_ValidationError(t *testing.T) {
	handler := handlers.RegisterHandler(testLogger(), &fakeAuthService{token: "test-token"})

	// password too short
	reqBody := `{"email": "test@example.com", "password": "short", "name": "Test"}`
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status 400 for validation error")
}

func TestLoginHandler_Success(t *testing.T) {
	handler := handlers.LoginHandler(testLogger(), &fakeAuthService{token: "test-token"})

	reqBody := `{"email": "test@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp handlers.AuthResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	handler := handlers.LoginHandler(testLogger(), &fakeAuthService{})

	reqBody := `{"email": "test@example.com", "password":`
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status 400 for invalid JSON")
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	handler := handlers.LoginHandler(testLogger(), &fakeAuthService{err: service.ErrInvalidCredentials})

	reqBody := `{"email": "test@example.com", "password": "wrongpassword"}`
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected status 401 for bad credentials")
}

func TestCreateOrderHandler_Success(t *testing.T) {
	fakeSvc := &fakeCheckoutService{order: &service.CheckoutOrder{
		OrderID:        42,
		GatewayOrderID: "order_abc",
		Amount:         499900,
		Currency:       "INR",
		KeyID:          "rzp_test_key",
	}}
	handler := handlers.CreateOrderHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("POST", "/api/checkout/order", bytes.NewBufferString(`{"amount": 499900}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, int64(1), fakeSvc.gotUserID, "Handler must pass the authenticated user id")

	var resp service.CheckoutOrder
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "order_abc", resp.GatewayOrderID)
	assert.Equal(t, int64(499900), resp.Amount)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
}

func TestCreateOrderHandler_Unauthorized(t *testing.T) {
	handler := handlers.CreateOrderHandler(testLogger(), &fakeCheckoutService{})

	req := httptest.NewRequest("POST", "/api/checkout/order", bytes.NewBufferString(`{"amount": 499900}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected status 401 without a user in context")
}

func TestCreateOrderHandler_NonPositiveAmount(t *testing.T) {
	handler := handlers.CreateOrderHandler(testLogger(), &fakeCheckoutService{})

	req := httptest.NewRequest("POST", "/api/checkout/order", bytes.NewBufferString(`{"amount": 0}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateOrderHandler_GatewayDown(t *testing.T) {
	handler := handlers.CreateOrderHandler(testLogger(), &fakeCheckoutService{err: gateway.ErrGateway})

	req := httptest.NewRequest("POST", "/api/checkout/order", bytes.NewBufferString(`{"amount": 499900}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadGateway, rr.Code, "Gateway failures map to 502")
}

func TestVerifyPaymentHandler_Success(t *testing.T) {
	fakeSvc := &fakeCheckoutService{result: &service.VerifyResult{Success: true, OrderID: 42}}
	handler := handlers.VerifyPaymentHandler(testLogger(), fakeSvc)

	reqBody := `{"gatewayOrderId": "order_abc", "gatewayPaymentId": "pay_123", "signature": "sig"}`
	req := httptest.NewRequest("POST", "/api/checkout/verify", bytes.NewBufferString(reqBody))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp service.VerifyResult
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.OrderID)
}

func TestVerifyPaymentHandler_MissingSignature(t *testing.T) {
	handler := handlers.VerifyPaymentHandler(testLogger(), &fakeCheckoutService{})

	reqBody := `{"gatewayOrderId": "order_abc", "gatewayPaymentId": "pay_123"}`
	req := httptest.NewRequest("POST", "/api/checkout/verify", bytes.NewBufferString(reqBody))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status 400 when the signature field is absent")
}

func TestVerifyPaymentHandler_InvalidSignature(t *testing.T) {
	handler := handlers.VerifyPaymentHandler(testLogger(), &fakeCheckoutService{err: service.ErrInvalidSignature})

	reqBody := `{"gatewayOrderId": "order_abc", "gatewayPaymentId": "pay_123", "signature": "forged"}`
	req := httptest.NewRequest("POST", "/api/checkout/verify", bytes.NewBufferString(reqBody))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "Forged signatures map to 400")
}

func TestVerifyPaymentHandler_OrderNotFound(t *testing.T) {
	handler := handlers.VerifyPaymentHandler(testLogger(), &fakeCheckoutService{err: storage.ErrOrderNotFound})

	reqBody := `{"gatewayOrderId": "order_abc", "gatewayPaymentId": "pay_123", "signature": "sig"}`
	req := httptest.NewRequest("POST", "/api/checkout/verify", bytes.NewBufferString(reqBody))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddToCartHandler_Success(t *testing.T) {
	fakeSvc := &fakeCartService{item: &models.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 3}}
	handler := handlers.AddToCartHandler(testLogger(), fakeSvc)

	req := httptest.NewRequest("POST", "/api/cart", bytes.NewBufferString(`{"productId": 10, "quantity": 3}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.CartItem
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 3, resp.Quantity)
}

func TestAddToCartHandler_UnknownProduct(t *testing.T) {
	handler := handlers.AddToCartHandler(testLogger(), &fakeCartService{err: storage.ErrProductNotFound})

	req := httptest.NewRequest("POST", "/api/cart", bytes.NewBufferString(`{"productId": 99, "quantity": 1}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddToCartHandler_ZeroQuantity(t *testing.T) {
	handler := handlers.AddToCartHandler(testLogger(), &fakeCartService{})

	req := httptest.NewRequest("POST", "/api/cart", bytes.NewBufferString(`{"productId": 10, "quantity": 0}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateCartItemHandler_NotFound(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/api/cart/{id}", handlers.UpdateCartItemHandler(testLogger(), &fakeCartService{err: storage.ErrCartItemNotFound}))

	req := httptest.NewRequest("PUT", "/api/cart/99", bytes.NewBufferString(`{"quantity": 2}`))
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRemoveCartItemHandler_Success(t *testing.T) {
	router := chi.NewRouter()
	router.Delete("/api/cart/{id}", handlers.RemoveCartItemHandler(testLogger(), &fakeCartService{}))

	req := httptest.NewRequest("DELETE", "/api/cart/7", nil)
	req = withUser(req, 1)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestGetCartHandler_Unauthorized(t *testing.T) {
	handler := handlers.GetCartHandler(testLogger(), &fakeCartService{})

	req := httptest.NewRequest("GET", "/api/cart", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
