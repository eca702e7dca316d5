package entity

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// CheckoutRates are the presentation-layer constants applied on top of a cart
// subtotal. They are config-driven and never persisted; the gateway computes
// the authoritative order total from the placed lines alone.
type CheckoutRates struct {
	DeliveryFee float64
	TaxRate     float64
}

// CheckoutSummary is the order summary shown on the checkout screen.
type CheckoutSummary struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	GrandTotal  float64
	TotalItems  int
}

// Summarize derives the checkout totals for a cart: tax is subtotal times the
// rate, the grand total adds the flat delivery fee. An empty cart yields a
// zero summary with no delivery fee.
func (r CheckoutRates) Summarize(cart *Cart) CheckoutSummary {
	if cart == nil || cart.Empty() {
		return CheckoutSummary{}
	}

	subtotal := cart.Subtotal()
	tax := subtotal * r.TaxRate

	return CheckoutSummary{
		Subtotal:    subtotal,
		DeliveryFee: r.DeliveryFee,
		Tax:         tax,
		GrandTotal:  subtotal + r.DeliveryFee + tax,
		TotalItems:  cart.TotalItems(),
	}
}

// ParseCheckoutRates builds rates from the configured decimal strings, e.g.
// "2.99" and "0.08".
func ParseCheckoutRates(deliveryFee, taxRate string) (CheckoutRates, error) {
	fee, err := strconv.ParseFloat(deliveryFee, 64)
	if err != nil {
		return CheckoutRates{}, errors.Wrap(err, "parse delivery fee")
	}
	rate, err := strconv.ParseFloat(taxRate, 64)
	if err != nil {
		return CheckoutRates{}, errors.Wrap(err, "parse tax rate")
	}
	if fee < 0 || rate < 0 {
		return CheckoutRates{}, errors.New("checkout rates must not be negative")
	}

	return CheckoutRates{DeliveryFee: fee, TaxRate: rate}, nil
}

// RoundCents rounds an amount to two decimal places for display.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
