package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velstra/streetwear-shop/internal/gateway"
)

func TestVerifySignature_Valid(t *testing.T) {
	secret := "testsecret"
	orderID := "order_Nxh2qkV3Jg"
	paymentID := "pay_Nxh4FZtLm1"

	sig := gateway.Sign(orderID, paymentID, secret)
	assert.True(t, gateway.VerifySignature(orderID, paymentID, sig, secret),
		"the gateway's own signature must verify")
}

func TestVerifySignature_SingleCharacterMutation(t *testing.T) {
	secret := "testsecret"
	orderID := "order_Nxh2qkV3Jg"
	paymentID := "pay_Nxh4FZtLm1"

	sig := gateway.Sign(orderID, paymentID, secret)

	// flip every position in turn; none of the mutants may pass
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.False(t, gateway.VerifySignature(orderID, paymentID, string(mutated), secret),
			"mutated signature must be rejected at position %d", i)
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := gateway.Sign("order_1", "pay_1", "secret-a")
	assert.False(t, gateway.VerifySignature("order_1", "pay_1", sig, "secret-b"))
}

func TestVerifySignature_SwappedIdentifiers(t *testing.T) {
	secret := "testsecret"
	sig := gateway.Sign("order_1", "pay_1", secret)
	assert.False(t, gateway.VerifySignature("pay_1", "order_1", sig, secret),
		"order and payment ids are not interchangeable")
}

func TestVerifySignature_EmptySignature(t *testing.T) {
	assert.False(t, gateway.VerifySignature("order_1", "pay_1", "", "testsecret"))
}
