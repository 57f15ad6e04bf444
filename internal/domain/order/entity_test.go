package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaikabox/v1/internal/domain/menu"
)

func testItems() []CartItem {
	return []CartItem{
		{Item: menu.FoodItem{ID: "ITEM-1", Name: "Idli", Price: 60}, Quantity: 2},
		{Item: menu.FoodItem{ID: "ITEM-2", Name: "Dosa", Price: 80}, Quantity: 1},
	}
}

func testAgent() DeliveryAgent {
	return DeliveryAgent{Name: "Ramesh", Vehicle: VehicleBike, ETAMinutes: 25}
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, 200, Subtotal(testItems()))
	assert.Equal(t, 0, Subtotal(nil))
}

func TestNewComputesTotal(t *testing.T) {
	o, err := New("asha", testItems(), testAgent(), "12 Park Street", "")

	require.NoError(t, err)
	// 200 subtotal + 40 delivery + 10 tax (5% rounded).
	assert.Equal(t, 250, o.Total)
	assert.Equal(t, StatusPreparing, o.Status)
	assert.Equal(t, "asha", o.Username)
	assert.NotEqual(t, "", o.ID.String())
}

func TestNewTaxRounding(t *testing.T) {
	items := []CartItem{{Item: menu.FoodItem{ID: "ITEM-1", Price: 110}, Quantity: 1}}

	o, err := New("asha", items, testAgent(), "addr", "")

	require.NoError(t, err)
	// 110 + 40 + round(5.5) = 156
	assert.Equal(t, 156, o.Total)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("asha", nil, testAgent(), "addr", "")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	bad := testItems()
	bad[0].Quantity = 0
	_, err = New("asha", bad, testAgent(), "addr", "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestLifecycleAdvance(t *testing.T) {
	o, err := New("asha", testItems(), testAgent(), "addr", "")
	require.NoError(t, err)

	require.NoError(t, o.Advance())
	assert.Equal(t, StatusOutForDelivery, o.Status)

	require.NoError(t, o.Advance())
	assert.Equal(t, StatusDelivered, o.Status)

	assert.ErrorIs(t, o.Advance(), ErrInvalidStatusTransition)
}

func TestCancelOnlyWhilePreparing(t *testing.T) {
	o, err := New("asha", testItems(), testAgent(), "addr", "")
	require.NoError(t, err)

	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
	assert.ErrorIs(t, o.Advance(), ErrInvalidStatusTransition)

	shipped, err := New("asha", testItems(), testAgent(), "addr", "")
	require.NoError(t, err)
	require.NoError(t, shipped.Advance())
	assert.ErrorIs(t, shipped.Cancel(), ErrNotCancellable)
}

func TestIsActive(t *testing.T) {
	o, err := New("asha", testItems(), testAgent(), "addr", "")
	require.NoError(t, err)

	assert.True(t, o.IsActive())
	require.NoError(t, o.Advance())
	assert.True(t, o.IsActive())
	require.NoError(t, o.Advance())
	assert.False(t, o.IsActive())
}
