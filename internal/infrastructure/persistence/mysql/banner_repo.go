package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/banner"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建横幅仓储
func NewBannerRepository(db *gorm.DB) banner.Repository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, b *banner.Banner) error {
	model := toBannerModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建横幅失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id uint) (*banner.Banner, error) {
	var model BannerModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, banner.ErrBannerNotFound
		}
		return nil, apperrors.Wrap(err, "查询横幅失败")
	}
	return toBannerEntity(&model), nil
}

// Update 保存全部字段，调用方先确认横幅存在
func (r *bannerRepository) Update(ctx context.Context, b *banner.Banner) error {
	model := toBannerModel(b)
	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新横幅失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&BannerModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除横幅失败")
	}
	if result.RowsAffected == 0 {
		return banner.ErrBannerNotFound
	}
	return nil
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]*banner.Banner, error) {
	query := dbFrom(ctx, r.db).Model(&BannerModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var models []BannerModel
	if err := query.Order("display_order ASC").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询横幅失败")
	}
	result := make([]*banner.Banner, len(models))
	for i := range models {
		result[i] = toBannerEntity(&models[i])
	}
	return result, nil
}

func toBannerModel(b *banner.Banner) *BannerModel {
	blocks := make([]BannerBlock, len(b.ContentBlocks))
	for i, blk := range b.ContentBlocks {
		blocks[i] = BannerBlock{Type: blk.Type, Content: blk.Content}
	}
	return &BannerModel{
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

func toBannerEntity(m *BannerModel) *banner.Banner {
	blocks := make([]banner.ContentBlock, len(m.ContentBlocks))
	for i, blk := range m.ContentBlocks {
		blocks[i] = banner.ContentBlock{Type: blk.Type, Content: blk.Content}
	}
	return &banner.Banner{
		ID:            m.ID,
		Title:         m.Title,
		ImageURL:      m.ImageURL,
		ContentBlocks: blocks,
		IsActive:      m.IsActive,
		DisplayOrder:  m.DisplayOrder,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
