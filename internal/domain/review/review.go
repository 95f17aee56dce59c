package review

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// Review 商品评价，只能针对已送达订单中的商品，每个订单明细最多一条
type Review struct {
	ID          uint
	UserID      uint
	UserName    string
	ProductID   uint
	OrderItemID *uint
	Rating      int
	Content     string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate 评分1-5
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Summary 商品评价统计
type Summary struct {
	Total         int64
	AverageRating float64
}

var (
	ErrReviewNotFound  = apperrors.NotFound("评价不存在")
	ErrInvalidRating   = apperrors.Validation("评分必须在1-5之间")
	ErrAlreadyReviewed = apperrors.Conflict("该订单商品已评价")
	ErrNotEligible     = apperrors.BadRequest("只能评价已送达订单中的商品")
	ErrNotReviewOwner  = apperrors.Forbidden("只能修改自己的评价")
)

// Repository 评价仓储接口
type Repository interface {
	// Create 同一订单明细重复评价返回ErrAlreadyReviewed
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uint) error
	ListByProduct(ctx context.Context, productID uint, limit int) ([]*Review, Summary, error)

	// ReviewedOrderItems 返回给定订单明细中已被评价的ID集合
	ReviewedOrderItems(ctx context.Context, orderItemIDs []uint) (map[uint]bool, error)
}
