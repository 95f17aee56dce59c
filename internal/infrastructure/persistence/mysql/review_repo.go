package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/review"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create order_item_id唯一索引保证每个订单明细只能评价一次
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	if err := dbFrom(ctx, r.db).Omit("User").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrAlreadyReviewed
		}
		return apperrors.Wrap(err, "创建评价失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := dbFrom(ctx, r.db).Preload("User").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := dbFrom(ctx, r.db).Model(&ReviewModel{ID: rv.ID}).
		Select("rating", "content", "images").
		Updates(&ReviewModel{Rating: rv.Rating, Content: rv.Content, Images: nonNilStrings(rv.Images)})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// ListByProduct 最新评价及评分统计
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uint, limit int) ([]*review.Review, review.Summary, error) {
	db := dbFrom(ctx, r.db)

	var stats struct {
		Total   int64
		Average float64
	}
	err := db.Model(&ReviewModel{}).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS average").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return nil, review.Summary{}, apperrors.Wrap(err, "统计评价失败")
	}

	var models []ReviewModel
	err = pageQuery(db.Preload("User").Where("product_id = ?", productID).Order("created_at DESC"), 0, limit).
		Find(&models).Error
	if err != nil {
		return nil, review.Summary{}, apperrors.Wrap(err, "查询评价失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, review.Summary{Total: stats.Total, AverageRating: stats.Average}, nil
}

func (r *reviewRepository) ReviewedOrderItems(ctx context.Context, orderItemIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(orderItemIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := dbFrom(ctx, r.db).Model(&ReviewModel{}).
		Where("order_item_id IN ?", orderItemIDs).
		Pluck("order_item_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:          rv.ID,
		UserID:      rv.UserID,
		ProductID:   rv.ProductID,
		OrderItemID: rv.OrderItemID,
		Rating:      rv.Rating,
		Content:     rv.Content,
		Images:      nonNilStrings(rv.Images),
		CreatedAt:   rv.CreatedAt,
		UpdatedAt:   rv.UpdatedAt,
	}
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:          m.ID,
		UserID:      m.UserID,
		UserName:    m.User.Name,
		ProductID:   m.ProductID,
		OrderItemID: m.OrderItemID,
		Rating:      m.Rating,
		Content:     m.Content,
		Images:      nonNilStrings(m.Images),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
