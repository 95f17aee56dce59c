package favorite

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/mall/internal/domain/favorite"
	"github.com/xiebiao/mall/internal/domain/product"
)

// ProductSummary 收藏列表中的商品摘要
type ProductSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	ImageURL      string `json:"imageUrl"`
	IsActive      bool   `json:"isActive"`
}

// ItemDTO 收藏条目
type ItemDTO struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Product   *ProductSummary `json:"product"` // 商品已删除时为null
	CreatedAt time.Time       `json:"createdAt"`
}

// ListResponse 收藏列表
type ListResponse struct {
	Items []ItemDTO `json:"items"`
	Total int64     `json:"total"`
}

// StatusResponse 收藏状态
type StatusResponse struct {
	IsFavorited   bool  `json:"isFavorited"`
	FavoriteCount int64 `json:"favoriteCount"`
}

// FavoriteUseCase 收藏用例
type FavoriteUseCase struct {
	repo        favorite.Repository
	productRepo product.Repository
}

// NewFavoriteUseCase 创建用例
func NewFavoriteUseCase(repo favorite.Repository, productRepo product.Repository) *FavoriteUseCase {
	return &FavoriteUseCase{repo: repo, productRepo: productRepo}
}

// List 我的收藏，limit最大50
func (uc *FavoriteUseCase) List(ctx context.Context, userID uint, limit, offset int) (*ListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	favs, total, err := uc.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(favs))
	for i, f := range favs {
		ids[i] = f.ProductID
	}
	products, err := uc.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ItemDTO, len(favs))
	for i, f := range favs {
		items[i] = ItemDTO{ID: f.ID, ProductID: f.ProductID, CreatedAt: f.CreatedAt}
		if p, ok := products[f.ProductID]; ok {
			items[i].Product = &ProductSummary{
				ID:            p.ID,
				Name:          p.Name,
				Price:         p.Price,
				OriginalPrice: p.OriginalPrice,
				ImageURL:      p.ImageURL,
				IsActive:      p.IsActive,
			}
		}
	}
	return &ListResponse{Items: items, Total: total}, nil
}

// Status 是否已收藏及收藏人数
func (uc *FavoriteUseCase) Status(ctx context.Context, userID, productID uint) (*StatusResponse, error) {
	exists, err := uc.repo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	count, err := uc.repo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{IsFavorited: exists, FavoriteCount: count}, nil
}

// Add 收藏商品
func (uc *FavoriteUseCase) Add(ctx context.Context, userID, productID uint) error {
	if _, err := uc.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return uc.repo.Add(ctx, &favorite.Favorite{UserID: userID, ProductID: productID, CreatedAt: time.Now()})
}

// Remove 取消收藏
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, productID uint) error {
	return uc.repo.Remove(ctx, userID, productID)
}

// Toggle 切换收藏状态
func (uc *FavoriteUseCase) Toggle(ctx context.Context, userID, productID uint) (*StatusResponse, error) {
	err := uc.repo.Remove(ctx, userID, productID)
	switch {
	case errors.Is(err, favorite.ErrFavoriteNotFound):
		if err := uc.Add(ctx, userID, productID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return uc.Status(ctx, userID, productID)
}
