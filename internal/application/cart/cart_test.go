package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/mall/internal/application/apptest"
	appcart "github.com/xiebiao/mall/internal/application/cart"
	"github.com/xiebiao/mall/internal/domain/cart"
	"github.com/xiebiao/mall/internal/domain/product"
)

func TestCart_AddMergesSameLine(t *testing.T) {
	store := apptest.NewStore()
	p := store.AddProduct(product.Product{Name: "티셔츠", Price: 10000, StockQuantity: 5, IsActive: true})
	uc := appcart.NewCartUseCase(store.Cart(), store.Products())
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1, Color: "black", Size: "M"}))
	require.NoError(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 2, Color: "black", Size: "M"}))
	require.NoError(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1, Color: "white", Size: "M"}))

	got, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "white", got.Items[0].Color)
	assert.Equal(t, 3, got.Items[1].Quantity)
	assert.Equal(t, int64(40000), got.TotalAmount)
	assert.Equal(t, 4, got.TotalCount)
}

func TestCart_AddValidation(t *testing.T) {
	store := apptest.NewStore()
	hidden := store.AddProduct(product.Product{Name: "숨김", Price: 1000, IsActive: false})
	uc := appcart.NewCartUseCase(store.Cart(), store.Products())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: hidden.ID, Quantity: 1}), product.ErrProductInactive)
	assert.ErrorIs(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: 999, Quantity: 1}), product.ErrProductNotFound)
	assert.ErrorIs(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: hidden.ID, Quantity: 0}), cart.ErrInvalidQuantity)
	assert.Zero(t, store.CartCount(1))
}

func TestCart_UnavailableItemsExcludedFromTotal(t *testing.T) {
	store := apptest.NewStore()
	p := store.AddProduct(product.Product{Name: "재고 부족", Price: 5000, StockQuantity: 1, IsActive: true})
	uc := appcart.NewCartUseCase(store.Cart(), store.Products())
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 2}))
	got, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.False(t, got.Items[0].IsAvailable)
	assert.Zero(t, got.TotalAmount)
}

func TestCart_OwnershipAndClear(t *testing.T) {
	store := apptest.NewStore()
	p := store.AddProduct(product.Product{Name: "티셔츠", Price: 10000, StockQuantity: 5, IsActive: true})
	uc := appcart.NewCartUseCase(store.Cart(), store.Products())
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, appcart.AddItemRequest{UserID: 1, ProductID: p.ID, Quantity: 1}))
	got, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	itemID := got.Items[0].ID

	assert.ErrorIs(t, uc.UpdateQuantity(ctx, 2, itemID, 3), cart.ErrItemNotFound)
	assert.ErrorIs(t, uc.Remove(ctx, 2, itemID), cart.ErrItemNotFound)
	assert.ErrorIs(t, uc.UpdateQuantity(ctx, 1, itemID, 0), cart.ErrInvalidQuantity)

	require.NoError(t, uc.UpdateQuantity(ctx, 1, itemID, 4))
	got, err = uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Items[0].Quantity)

	require.NoError(t, uc.Clear(ctx, 1))
	assert.Zero(t, store.CartCount(1))
}
