package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/favorite"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) favorite.Repository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	model := &FavoriteModel{UserID: f.UserID, ProductID: f.ProductID}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return favorite.ErrAlreadyFavorited
		}
		return apperrors.Wrap(err, "收藏失败")
	}
	f.ID = model.ID
	f.CreatedAt = model.CreatedAt
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, productID uint) error {
	result := dbFrom(ctx, r.db).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&FavoriteModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "取消收藏失败")
	}
	if result.RowsAffected == 0 {
		return favorite.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&FavoriteModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询收藏失败")
	}
	return count > 0, nil
}

func (r *favoriteRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := dbFrom(ctx, r.db).Model(&FavoriteModel{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询收藏数失败")
	}
	return count, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*favorite.Favorite, int64, error) {
	query := dbFrom(ctx, r.db).Model(&FavoriteModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询收藏总数失败")
	}

	var models []FavoriteModel
	if err := pageQuery(query.Order("created_at DESC"), offset, limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询收藏列表失败")
	}
	result := make([]*favorite.Favorite, len(models))
	for i, m := range models {
		result[i] = &favorite.Favorite{ID: m.ID, UserID: m.UserID, ProductID: m.ProductID, CreatedAt: m.CreatedAt}
	}
	return result, total, nil
}
