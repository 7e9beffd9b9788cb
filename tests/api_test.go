package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const baseURL = "http://localhost:8080"

type AuthResponse struct {
	Token string `json:"token"`
}

type CartResponse struct {
	Items []struct {
		ID       int64 `json:"id"`
		Quantity int   `json:"quantity"`
	} `json:"items"`
	Total int64 `json:"total"`
}

// registerUser signs up a fresh account and returns its JWT. Emails are
// unique per run so the suite can be re-run against the same database.
func registerUser(t *testing.T) string {
	t.Helper()
	email := fmt.Sprintf("apitest+%d@example.com", time.Now().UnixNano())
	reqBody := []byte(`{"email": "` + email + `", "password": "testpass123", "name": "API Test"}`)
	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err, "Register request should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Expected 201 Created for valid registration")

	var authResp AuthResponse
	err = json.NewDecoder(resp.Body).Decode(&authResp)
	assert.NoError(t, err, "Decoding auth response should succeed")
	assert.NotEmpty(t, authResp.Token, "Token should not be empty")
	return authResp.Token
}

func authorizedRequest(t *testing.T, method, path, token string, body []byte) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	return resp
}

// registration followed by a login with the same credentials
func TestRegisterAndLogin(t *testing.T) {
	email := fmt.Sprintf("logintest+%d@example.com", time.Now().UnixNano())
	reqBody := []byte(`{"email": "` + email + `", "password": "testpass123", "name": "Login Test"}`)
	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	loginBody := []byte(`{"email": "` + email + `", "password": "testpass123"}`)
	resp, err = http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(loginBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "expected 200 OK for valid login")

	var authResp AuthResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	assert.NotEmpty(t, authResp.Token)
}

func TestLoginInvalidPayload(t *testing.T) {
	reqBody := []byte(`{"email": "", "password": ""}`)
	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for empty credentials")
}

func TestListProductsPublic(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/products")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "catalog must be readable without a token")
}

func TestGetCartUnauthorized(t *testing.T) {
	req, err := http.NewRequest("GET", baseURL+"/api/cart", nil)
	assert.NoError(t, err)
	client := &http.Client{}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected 401 for missing token")
}

func TestGetCartEmpty(t *testing.T) {
	token := registerUser(t)

	resp := authorizedRequest(t, "GET", "/api/cart", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cart CartResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	assert.Empty(t, cart.Items, "A fresh account starts with an empty cart")
	assert.Zero(t, cart.Total)
}

func TestAddUnknownProductToCart(t *testing.T) {
	token := registerUser(t)

	body := []byte(`{"productId": 999999999, "quantity": 1}`)
	resp := authorizedRequest(t, "POST", "/api/cart", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "expected 404 for a product that does not exist")
}

func TestWishlistUnknownProduct(t *testing.T) {
	token := registerUser(t)

	body := []byte(`{"productId": 999999999}`)
	resp := authorizedRequest(t, "POST", "/api/wishlist", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutOrderInvalidAmount(t *testing.T) {
	token := registerUser(t)

	body := []byte(`{"amount": 0}`)
	resp := authorizedRequest(t, "POST", "/api/checkout/order", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for a non-positive amount")
}

// the signature check runs before any order lookup, so a forged callback is
// rejected with 400 regardless of whether the order exists
func TestVerifyPaymentForgedSignature(t *testing.T) {
	token := registerUser(t)

	body := []byte(`{"gatewayOrderId": "order_forged", "gatewayPaymentId": "pay_forged", "signature": "deadbeef"}`)
	resp := authorizedRequest(t, "POST", "/api/checkout/verify", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for a forged signature")
}

func TestAdminEndpointsForbiddenForCustomers(t *testing.T) {
	token := registerUser(t)

	body := []byte(`{"name": "Sneak Product", "slug": "sneak-product", "price": 100, "categoryId": 1}`)
	resp := authorizedRequest(t, "POST", "/api/admin/products", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "a customer token must not reach admin endpoints")
}
