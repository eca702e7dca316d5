package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/errors"
)

func newTestProduct(shopID uuid.UUID, name string, price float64) *Product {
	return &Product{
		ID:     uuid.New(),
		ShopID: shopID,
		Name:   name,
		Price:  price,
		Stock:  10,
	}
}

func TestCart_AddLine_AccumulatesQuantity(t *testing.T) {
	shopID := uuid.New()
	p := newTestProduct(shopID, "Milk", 3.99)
	cart := NewCart()

	require.NoError(t, cart.AddLine(p, shopID, 1))
	require.NoError(t, cart.AddLine(p, shopID, 2))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems())
}

func TestCart_AddLine_RejectsNonPositiveQuantity(t *testing.T) {
	shopID := uuid.New()
	cart := NewCart()

	err := cart.AddLine(newTestProduct(shopID, "Milk", 3.99), shopID, 0)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.True(t, cart.Empty())
}

func TestCart_AddLine_RejectsCrossShopAdd(t *testing.T) {
	shopA := uuid.New()
	shopB := uuid.New()
	cart := NewCart()

	require.NoError(t, cart.AddLine(newTestProduct(shopA, "Milk", 3.99), shopA, 1))

	err := cart.AddLine(newTestProduct(shopB, "Bread", 2.49), shopB, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartConflict))

	// The cart keeps its original shop and contents.
	assert.Equal(t, shopA, cart.ShopID())
	assert.Equal(t, 1, cart.TotalItems())
}

func TestCart_AddLine_AllowsNewShopAfterClear(t *testing.T) {
	shopA := uuid.New()
	shopB := uuid.New()
	cart := NewCart()

	require.NoError(t, cart.AddLine(newTestProduct(shopA, "Milk", 3.99), shopA, 1))
	cart.Clear()
	require.NoError(t, cart.AddLine(newTestProduct(shopB, "Bread", 2.49), shopB, 1))

	assert.Equal(t, shopB, cart.ShopID())
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	shopID := uuid.New()
	p := newTestProduct(shopID, "Milk", 3.99)
	other := newTestProduct(shopID, "Bread", 2.49)

	removed := NewCart()
	require.NoError(t, removed.AddLine(p, shopID, 2))
	removed.RemoveLine(p.ID)

	zeroed := NewCart()
	require.NoError(t, zeroed.AddLine(p, shopID, 2))
	zeroed.SetQuantity(p.ID, 0)

	assert.Equal(t, removed.Lines(), zeroed.Lines())
	assert.True(t, zeroed.Empty())

	// Unknown product is a no-op.
	zeroed.SetQuantity(other.ID, 5)
	assert.True(t, zeroed.Empty())
}

func TestCart_SetQuantity_UpdatesLine(t *testing.T) {
	shopID := uuid.New()
	p := newTestProduct(shopID, "Milk", 3.99)
	cart := NewCart()
	require.NoError(t, cart.AddLine(p, shopID, 2))

	cart.SetQuantity(p.ID, 7)
	assert.Equal(t, 7, cart.TotalItems())
}

func TestCart_RemoveLine_AbsentIsNoError(t *testing.T) {
	cart := NewCart()
	cart.RemoveLine(uuid.New())
	assert.True(t, cart.Empty())
}

func TestCart_TotalsHoldAcrossInterleavedOperations(t *testing.T) {
	shopID := uuid.New()
	milk := newTestProduct(shopID, "Milk", 3.99)
	bread := newTestProduct(shopID, "Bread", 2.49)
	eggs := newTestProduct(shopID, "Eggs", 4.25)

	cart := NewCart()
	require.NoError(t, cart.AddLine(milk, shopID, 2))
	require.NoError(t, cart.AddLine(bread, shopID, 1))
	require.NoError(t, cart.AddLine(eggs, shopID, 3))
	cart.SetQuantity(bread.ID, 4)
	cart.RemoveLine(eggs.ID)
	require.NoError(t, cart.AddLine(milk, shopID, 1))

	var wantItems int
	var wantSubtotal float64
	for _, line := range cart.Lines() {
		wantItems += line.Quantity
		wantSubtotal += line.Product.Price * float64(line.Quantity)
	}

	assert.Equal(t, wantItems, cart.TotalItems())
	assert.InDelta(t, wantSubtotal, cart.Subtotal(), 1e-9)
}

func TestCart_SubtotalTracksCurrentPrice(t *testing.T) {
	shopID := uuid.New()
	milk := newTestProduct(shopID, "Milk", 3.99)
	cart := NewCart()
	require.NoError(t, cart.AddLine(milk, shopID, 2))

	// The cart reads the live product price, not a frozen one.
	milk.Price = 4.50
	assert.InDelta(t, 9.00, cart.Subtotal(), 1e-9)
}
