package favorite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/mall/internal/application/apptest"
	appfavorite "github.com/xiebiao/mall/internal/application/favorite"
	"github.com/xiebiao/mall/internal/domain/favorite"
	"github.com/xiebiao/mall/internal/domain/product"
)

func TestFavorite_AddRemove(t *testing.T) {
	store := apptest.NewStore()
	p := store.AddProduct(product.Product{Name: "셔츠", Price: 30000, IsActive: true})
	uc := appfavorite.NewFavoriteUseCase(store.Favorites(), store.Products())
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, 1, p.ID))
	assert.ErrorIs(t, uc.Add(ctx, 1, p.ID), favorite.ErrAlreadyFavorited)
	assert.ErrorIs(t, uc.Add(ctx, 1, 999), product.ErrProductNotFound)
	require.NoError(t, uc.Add(ctx, 2, p.ID))

	status, err := uc.Status(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, status.IsFavorited)
	assert.Equal(t, int64(2), status.FavoriteCount)

	require.NoError(t, uc.Remove(ctx, 1, p.ID))
	assert.ErrorIs(t, uc.Remove(ctx, 1, p.ID), favorite.ErrFavoriteNotFound)
}

func TestFavorite_Toggle(t *testing.T) {
	store := apptest.NewStore()
	p := store.AddProduct(product.Product{Name: "셔츠", Price: 30000, IsActive: true})
	uc := appfavorite.NewFavoriteUseCase(store.Favorites(), store.Products())
	ctx := context.Background()

	status, err := uc.Toggle(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, status.IsFavorited)
	assert.Equal(t, int64(1), status.FavoriteCount)

	status, err = uc.Toggle(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorited)
	assert.Zero(t, status.FavoriteCount)

	_, err = uc.Toggle(ctx, 1, 999)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestFavorite_List(t *testing.T) {
	store := apptest.NewStore()
	uc := appfavorite.NewFavoriteUseCase(store.Favorites(), store.Products())
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		p := store.AddProduct(product.Product{Name: "상품", Price: int64(1000 * (i + 1)), IsActive: true})
		require.NoError(t, uc.Add(ctx, 1, p.ID))
		ids = append(ids, p.ID)
	}
	require.NoError(t, store.Products().Delete(ctx, ids[0]))

	resp, err := uc.List(ctx, 1, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, ids[2], resp.Items[0].ProductID)
	assert.Equal(t, int64(3000), resp.Items[0].Product.Price)
	assert.Nil(t, resp.Items[2].Product, "已删除商品")

	resp, err = uc.List(ctx, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, ids[1], resp.Items[0].ProductID)
}
