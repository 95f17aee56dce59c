package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/mall/internal/application/apptest"
	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/domain/user"
)

func TestAdminUser_Search(t *testing.T) {
	store := apptest.NewStore()
	uc := appuser.NewAdminUserUseCase(store.Users())
	ctx := context.Background()

	kim := store.AddUser(user.User{Email: "kim@example.com", Name: "김철수", Phone: "010-1111-2222", IsActive: true})
	lee := store.AddUser(user.User{Email: "lee@shop.kr", Name: "이영희", Phone: "010-3333-4444", IsActive: true, MarketingAgreed: true})
	park := store.AddUser(user.User{Email: "park@example.com", Name: "박민수", Phone: "010-5555-1111"})

	testCases := []struct {
		name    string
		query   string
		wantIDs []uint
	}{
		{name: "空查询返回全部", query: "", wantIDs: []uint{park.ID, lee.ID, kim.ID}},
		{name: "按姓名", query: "영희", wantIDs: []uint{lee.ID}},
		{name: "按邮箱", query: "example.com", wantIDs: []uint{park.ID, kim.ID}},
		{name: "按手机号", query: "1111", wantIDs: []uint{park.ID, kim.ID}},
		{name: "无结果", query: "없음", wantIDs: []uint{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := uc.Search(ctx, tc.query, 1, 20)
			require.NoError(t, err)
			ids := make([]uint, len(res.Users))
			for i, u := range res.Users {
				ids[i] = u.ID
			}
			assert.Equal(t, tc.wantIDs, ids)
			assert.EqualValues(t, len(tc.wantIDs), res.Total)
		})
	}

	paged, err := uc.Search(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, paged.Total)
	require.Len(t, paged.Users, 1)
	assert.Equal(t, kim.ID, paged.Users[0].ID)
	assert.Equal(t, 2, paged.Page)
}

func TestAdminUser_Get(t *testing.T) {
	store := apptest.NewStore()
	uc := appuser.NewAdminUserUseCase(store.Users())
	ctx := context.Background()
	lee := store.AddUser(user.User{Email: "lee@shop.kr", Name: "이영희", Phone: "010-3333-4444", IsActive: true, MarketingAgreed: true})

	got, err := uc.Get(ctx, lee.ID)
	require.NoError(t, err)
	assert.Equal(t, "010-3333-4444", got.Phone)
	assert.True(t, got.MarketingAgreed)

	_, err = uc.Get(ctx, 999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
