package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCart(t *testing.T) {
	cart := NewCart("user1")

	assert.Equal(t, "user1", cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddItem_NewProduct(t *testing.T) {
	cart := NewCart("user1")

	err := cart.AddItem(10, 2, 9.99)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, CartItem{ProductID: 10, Quantity: 2, Price: 9.99}, cart.Items[0])
}

func TestCart_AddItem_ExistingProduct_MergesQuantityAndReplacesPrice(t *testing.T) {
	cart := NewCart("user1")
	assert.NoError(t, cart.AddItem(10, 2, 9.99))

	err := cart.AddItem(10, 1, 8.99)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, CartItem{ProductID: 10, Quantity: 3, Price: 8.99}, cart.Items[0])
}

func TestCart_AddItem_PreservesInsertionOrder(t *testing.T) {
	cart := NewCart("user1")
	assert.NoError(t, cart.AddItem(10, 1, 1.00))
	assert.NoError(t, cart.AddItem(20, 1, 2.00))
	assert.NoError(t, cart.AddItem(10, 1, 1.50))

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, int64(10), cart.Items[0].ProductID)
	assert.Equal(t, int64(20), cart.Items[1].ProductID)
}

func TestCart_AddItem_Invalid(t *testing.T) {
	cart := NewCart("user1")

	assert.Error(t, cart.AddItem(0, 1, 1.00))
	assert.Error(t, cart.AddItem(10, 0, 1.00))
	assert.Error(t, cart.AddItem(10, -1, 1.00))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart("user1")
	assert.NoError(t, cart.AddItem(10, 2, 9.99))
	assert.NoError(t, cart.AddItem(20, 1, 5.00))

	cart.RemoveItem(10)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(20), cart.Items[0].ProductID)
}

func TestCart_RemoveItem_AbsentProductIsNoOp(t *testing.T) {
	cart := NewCart("user1")
	assert.NoError(t, cart.AddItem(10, 2, 9.99))

	cart.RemoveItem(99)

	assert.Len(t, cart.Items, 1)
}

func TestCart_GetItem(t *testing.T) {
	cart := NewCart("user1")
	assert.NoError(t, cart.AddItem(10, 2, 9.99))

	item, idx := cart.GetItem(10)
	assert.NotNil(t, item)
	assert.Equal(t, 0, idx)

	item, idx = cart.GetItem(99)
	assert.Nil(t, item)
	assert.Equal(t, -1, idx)
}
