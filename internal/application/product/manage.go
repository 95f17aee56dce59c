package product

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/product"
)

// ManageProductUseCase 管理员商品维护，所有写操作后使商品缓存失效
type ManageProductUseCase struct {
	repo  product.Repository
	cache application.Cache
	log   *zap.Logger
	now   func() time.Time
}

// NewManageProductUseCase 创建用例
func NewManageProductUseCase(repo product.Repository, cache application.Cache, log *zap.Logger) *ManageProductUseCase {
	return &ManageProductUseCase{repo: repo, cache: cache, log: log, now: time.Now}
}

// Create 创建商品
func (uc *ManageProductUseCase) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	now := uc.now()
	p := &product.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Categories:    req.Categories,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsNew:         req.IsNew,
		IsBest:        req.IsBest,
		IsActive:      req.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.log.Info("商品已创建", zap.Uint("product_id", p.ID), zap.String("name", p.Name))
	dto := toProductDTO(p)
	return &dto, nil
}

// Update 部分更新
func (uc *ManageProductUseCase) Update(ctx context.Context, req UpdateProductRequest) (*ProductDTO, error) {
	p, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		p.OriginalPrice = *req.OriginalPrice
	}
	if req.Categories != nil {
		p.Categories = req.Categories
	}
	if req.Colors != nil {
		p.Colors = req.Colors
	}
	if req.Sizes != nil {
		p.Sizes = req.Sizes
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.IsNew != nil {
		p.IsNew = *req.IsNew
	}
	if req.IsBest != nil {
		p.IsBest = *req.IsBest
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	dto := toProductDTO(p)
	return &dto, nil
}

// Delete 删除商品，已下单的明细保留快照
func (uc *ManageProductUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info("商品已删除", zap.Uint("product_id", id))
	return nil
}

func (uc *ManageProductUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, CachePrefix); err != nil {
		uc.log.Warn("清除商品缓存失败", zap.Error(err))
	}
}
