package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartServiceAddAndView(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	view, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Mel de Cacau", view.Items[0].Name)
	assert.Equal(t, 2, view.TotalItemCount)
	assert.Equal(t, "65.80", view.Subtotal.String())
	assert.Equal(t, "R$ 65.80", view.SubtotalFormatted)

	again, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	assert.Equal(t, "mel-de-cacau", again.Items[0].ProductID)
	assert.Equal(t, view.SubtotalFormatted, again.SubtotalFormatted)
	assert.Equal(t, view.TotalItemCount, again.TotalItemCount)
}

func TestCartServiceAlcoholRequiresAgeVerification(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "cauchaca-original", Quantity: 1})
	assert.ErrorIs(t, err, ErrAgeVerificationRequired)

	f.verifyAge(t, "s1")
	view, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "cauchaca-original", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, view.Items[0].ContainsAlcohol)

	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s2", ProductID: "cauchaca-original", Quantity: 1})
	assert.ErrorIs(t, err, ErrAgeVerificationRequired)
}

func TestCartServiceRejectsUnknownAndInactiveProducts(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.productRepo.SetActive("nibs-de-cacau", false)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "nibs-de-cacau", Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartServiceStockLimit(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	_, err := f.productRepo.UpdateStock("granola-baiana", 3)
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "granola-baiana", Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "granola-baiana", Quantity: 2})
	assert.ErrorIs(t, err, ErrProductOutOfStock)
	_, err = f.carts.UpdateItem(ctx, UpdateCartItemInput{SessionID: "s1", ProductID: "granola-baiana", Quantity: 4})
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	view, err := f.carts.UpdateItem(ctx, UpdateCartItemInput{SessionID: "s1", ProductID: "granola-baiana", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalItemCount)
}

func TestCartServiceUpdateBelowOneRemoves(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	_, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 2})
	require.NoError(t, err)

	view, err := f.carts.UpdateItem(ctx, UpdateCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItemCount)

	_, err = f.carts.UpdateItem(ctx, UpdateCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 1})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	_, err := f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "mel-de-cacau", Quantity: 1})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, AddCartItemInput{SessionID: "s1", ProductID: "cha-de-cacau", Quantity: 1})
	require.NoError(t, err)

	view, err := f.carts.RemoveItem(ctx, "s1", "mel-de-cacau")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "cha-de-cacau", view.Items[0].ProductID)

	require.NoError(t, f.carts.Clear(ctx, "s1"))
	require.NoError(t, f.carts.Clear(ctx, "s1"))
	view, err = f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalItemCount)
}

func TestCartServiceRejectsInvalidSession(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.carts.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
