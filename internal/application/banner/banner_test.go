package banner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application/apptest"
	appbanner "github.com/xiebiao/mall/internal/application/banner"
	"github.com/xiebiao/mall/internal/domain/banner"
)

func newBannerUseCase() (*appbanner.BannerUseCase, *apptest.Cache) {
	cache := apptest.NewCache()
	return appbanner.NewBannerUseCase(apptest.NewStore().Banners(), cache, 0, zap.NewNop()), cache
}

func TestBanner_ListOrder(t *testing.T) {
	uc, _ := newBannerUseCase()
	ctx := context.Background()
	hidden := false

	second, err := uc.Create(ctx, appbanner.CreateRequest{Title: "두번째", ImageURL: "/b/2.png", DisplayOrder: 2})
	require.NoError(t, err)
	older, err := uc.Create(ctx, appbanner.CreateRequest{Title: "첫번째-이전", ImageURL: "/b/1a.png", DisplayOrder: 1})
	require.NoError(t, err)
	newer, err := uc.Create(ctx, appbanner.CreateRequest{Title: "첫번째-최신", ImageURL: "/b/1b.png", DisplayOrder: 1})
	require.NoError(t, err)
	off, err := uc.Create(ctx, appbanner.CreateRequest{Title: "비활성", ImageURL: "/b/0.png", IsActive: &hidden})
	require.NoError(t, err)
	assert.True(t, second.IsActive, "默认展示")
	assert.False(t, off.IsActive)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 4, all.Total)
	ids := []uint{all.Banners[0].ID, all.Banners[1].ID, all.Banners[2].ID, all.Banners[3].ID}
	assert.Equal(t, []uint{off.ID, newer.ID, older.ID, second.ID}, ids)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, active.Total)
	for _, b := range active.Banners {
		assert.True(t, b.IsActive)
	}
}

func TestBanner_CacheInvalidatedOnWrite(t *testing.T) {
	uc, cache := newBannerUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, appbanner.CreateRequest{Title: "봄 세일", ImageURL: "/b/1.png"})
	require.NoError(t, err)
	_, err = uc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	hide := false
	_, err = uc.Update(ctx, appbanner.UpdateRequest{ID: created.ID, IsActive: &hide})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, active.Total, "更新后不能读到旧列表")

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Equal(t, 0, cache.Len())
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, banner.ErrBannerNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), banner.ErrBannerNotFound)
}

func TestBanner_Validate(t *testing.T) {
	uc, _ := newBannerUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, appbanner.CreateRequest{Title: "영상", ImageURL: "/b/1.png",
		ContentBlocks: []appbanner.ContentBlockDTO{{Type: "video", Content: "/v.mp4"}}})
	assert.ErrorIs(t, err, banner.ErrInvalidBlockType)

	_, err = uc.Create(ctx, appbanner.CreateRequest{Title: " ", ImageURL: "/b/1.png"})
	assert.ErrorIs(t, err, banner.ErrMissingField)

	created, err := uc.Create(ctx, appbanner.CreateRequest{Title: "이벤트", ImageURL: "/b/1.png",
		ContentBlocks: []appbanner.ContentBlockDTO{{Type: banner.BlockText, Content: "안내"}, {Type: banner.BlockImage, Content: "/d.png"}}})
	require.NoError(t, err)
	assert.Len(t, created.ContentBlocks, 2)

	empty := ""
	_, err = uc.Update(ctx, appbanner.UpdateRequest{ID: created.ID, ImageURL: &empty})
	assert.ErrorIs(t, err, banner.ErrMissingField)
}
