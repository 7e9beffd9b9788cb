package gateway

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/velstra/streetwear-shop/internal/config"
)

// ErrGateway marks any failure of the external payment API. Callers surface
// it as "try again" and must not write local state after it.
var ErrGateway = errors.New("payment gateway request failed")

// Order is the typed subset of the gateway's order response we rely on.
// The SDK hands back map[string]interface{}; the shape is pinned down here
// so dynamic payloads never leak past this package.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// OrderCreator creates a remote checkout order at the payment gateway.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
}

// Client wraps the Razorpay SDK with server-side credentials.
type Client struct {
	rzp      *razorpay.Client
	keyID    string
	currency string
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		rzp:      razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:    cfg.KeyID,
		currency: cfg.Currency,
	}
}

// KeyID returns the public key id handed to the checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder registers a checkout session with the gateway. Amount is in
// minor currency units, as the gateway expects.
func (c *Client) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := c.rzp.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: response without order id", ErrGateway)
	}
	return &Order{ID: id, Amount: amount, Currency: currency}, nil
}
