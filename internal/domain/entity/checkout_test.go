package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutRates_Summarize(t *testing.T) {
	shopID := uuid.New()
	cart := NewCart()
	require.NoError(t, cart.AddLine(newTestProduct(shopID, "Milk", 3.99), shopID, 2))
	require.NoError(t, cart.AddLine(newTestProduct(shopID, "Bread", 2.49), shopID, 1))

	rates := CheckoutRates{DeliveryFee: 2.99, TaxRate: 0.08}
	summary := rates.Summarize(cart)

	assert.InDelta(t, 10.47, summary.Subtotal, 1e-9)
	assert.InDelta(t, 2.99, summary.DeliveryFee, 1e-9)
	assert.InDelta(t, 0.8376, summary.Tax, 1e-9)
	assert.InDelta(t, 14.2976, summary.GrandTotal, 1e-9)
	assert.Equal(t, 3, summary.TotalItems)
	assert.InDelta(t, 14.30, RoundCents(summary.GrandTotal), 1e-9)
}

func TestParseCheckoutRates(t *testing.T) {
	rates, err := ParseCheckoutRates("2.99", "0.08")
	require.NoError(t, err)
	assert.InDelta(t, 2.99, rates.DeliveryFee, 1e-9)
	assert.InDelta(t, 0.08, rates.TaxRate, 1e-9)

	_, err = ParseCheckoutRates("free", "0.08")
	assert.Error(t, err)

	_, err = ParseCheckoutRates("2.99", "-0.08")
	assert.Error(t, err)
}

func TestCheckoutRates_Summarize_EmptyCart(t *testing.T) {
	rates := CheckoutRates{DeliveryFee: 2.99, TaxRate: 0.08}

	summary := rates.Summarize(NewCart())
	assert.Zero(t, summary.GrandTotal)
	assert.Zero(t, summary.DeliveryFee)
	assert.Zero(t, summary.TotalItems)
}
