package banner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/banner"
	rediscache "github.com/xiebiao/mall/internal/infrastructure/persistence/redis"
)

// CachePrefix 横幅列表缓存前缀
const CachePrefix = "banner"

// ContentBlockDTO 内容块
type ContentBlockDTO struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// BannerDTO 横幅
type BannerDTO struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	ImageURL      string            `json:"bannerImage"`
	ContentBlocks []ContentBlockDTO `json:"contentBlocks"`
	IsActive      bool              `json:"isActive"`
	DisplayOrder  int               `json:"displayOrder"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ListResponse 横幅列表
type ListResponse struct {
	Banners []BannerDTO `json:"banners"`
	Total   int         `json:"total"`
}

// CreateRequest 创建横幅，IsActive为空时默认展示
type CreateRequest struct {
	Title         string
	ImageURL      string
	ContentBlocks []ContentBlockDTO
	IsActive      *bool
	DisplayOrder  int
}

// UpdateRequest 部分更新，nil字段保持不变
type UpdateRequest struct {
	ID            uint
	Title         *string
	ImageURL      *string
	ContentBlocks []ContentBlockDTO
	IsActive      *bool
	DisplayOrder  *int
}

// BannerUseCase 横幅查询与维护
type BannerUseCase struct {
	repo  banner.Repository
	cache application.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewBannerUseCase 创建用例，ttl<=0时使用5分钟
func NewBannerUseCase(repo banner.Repository, cache application.Cache, ttl time.Duration, log *zap.Logger) *BannerUseCase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BannerUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// List 横幅列表，activeOnly为true时只返回展示中的横幅
func (uc *BannerUseCase) List(ctx context.Context, activeOnly bool) (*ListResponse, error) {
	key := rediscache.Key(CachePrefix, "list", activeOnly)
	return application.Cached(ctx, uc.cache, uc.log, CachePrefix, key, uc.ttl, func() (*ListResponse, error) {
		banners, err := uc.repo.List(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		out := make([]BannerDTO, len(banners))
		for i, b := range banners {
			out[i] = toBannerDTO(b)
		}
		return &ListResponse{Banners: out, Total: len(out)}, nil
	})
}

// Get 横幅详情
func (uc *BannerUseCase) Get(ctx context.Context, id uint) (*BannerDTO, error) {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toBannerDTO(b)
	return &dto, nil
}

// Create 创建横幅
func (uc *BannerUseCase) Create(ctx context.Context, req CreateRequest) (*BannerDTO, error) {
	b := &banner.Banner{
		Title:         strings.TrimSpace(req.Title),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		ContentBlocks: toBlocks(req.ContentBlocks),
		IsActive:      req.IsActive == nil || *req.IsActive,
		DisplayOrder:  req.DisplayOrder,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.log.Info("横幅已创建", zap.Uint("banner_id", b.ID), zap.String("title", b.Title))
	dto := toBannerDTO(b)
	return &dto, nil
}

// Update 部分更新
func (uc *BannerUseCase) Update(ctx context.Context, req UpdateRequest) (*BannerDTO, error) {
	b, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.ImageURL != nil {
		b.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.ContentBlocks != nil {
		b.ContentBlocks = toBlocks(req.ContentBlocks)
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		b.DisplayOrder = *req.DisplayOrder
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	dto := toBannerDTO(b)
	return &dto, nil
}

// Delete 删除横幅
func (uc *BannerUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info("横幅已删除", zap.Uint("banner_id", id))
	return nil
}

func (uc *BannerUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, CachePrefix); err != nil {
		uc.log.Warn("清除横幅缓存失败", zap.Error(err))
	}
}

func toBlocks(in []ContentBlockDTO) []banner.ContentBlock {
	out := make([]banner.ContentBlock, len(in))
	for i, blk := range in {
		out[i] = banner.ContentBlock{Type: blk.Type, Content: blk.Content}
	}
	return out
}

func toBannerDTO(b *banner.Banner) BannerDTO {
	blocks := make([]ContentBlockDTO, len(b.ContentBlocks))
	for i, blk := range b.ContentBlocks {
		blocks[i] = ContentBlockDTO{Type: blk.Type, Content: blk.Content}
	}
	return BannerDTO{
		ID:            b.ID,
		Title:         b.Title,
		ImageURL:      b.ImageURL,
		ContentBlocks: blocks,
		IsActive:      b.IsActive,
		DisplayOrder:  b.DisplayOrder,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
