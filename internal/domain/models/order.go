package models

import "time"

// OrderStatus enumerates the lifecycle of a checkout.
// pending -> paid is written only by payment verification;
// anything else stays pending or is marked failed.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order is the local record of a checkout keyed to the gateway order id.
// Amount is in minor currency units.
type Order struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"user_id"`
	Amount           int64       `json:"amount"`
	Currency         string      `json:"currency"`
	Status           OrderStatus `json:"status"`
	GatewayOrderID   string      `json:"gateway_order_id"`
	GatewayPaymentID *string     `json:"gateway_payment_id,omitempty"`
	GatewaySignature *string     `json:"-"`
	Receipt          string      `json:"receipt"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
