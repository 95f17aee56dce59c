package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/domain/review"
)

// 不可评价原因
const (
	ReasonNoDeliveredOrder = "no_delivered_order"
	ReasonAlreadyReviewed  = "already_reviewed"
)

// ReviewDTO 评价
type ReviewDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	ProductID   uint      `json:"productId"`
	OrderItemID *uint     `json:"orderItemId,omitempty"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListResponse 商品评价列表
type ListResponse struct {
	Reviews       []ReviewDTO `json:"reviews"`
	Total         int64       `json:"total"`
	AverageRating float64     `json:"averageRating"`
}

// EligibilityResponse 评价资格
type EligibilityResponse struct {
	CanReview   bool   `json:"canReview"`
	Reason      string `json:"reason,omitempty"`
	OrderItemID *uint  `json:"orderItemId,omitempty"`
}

// CreateRequest 发表评价
type CreateRequest struct {
	UserID      uint
	ProductID   uint
	OrderItemID *uint // 为空时自动选择第一个未评价的已送达明细
	Rating      int
	Content     string
	Images      []string
}

// UpdateRequest 修改评价
type UpdateRequest struct {
	UserID   uint
	ReviewID uint
	Rating   int
	Content  string
	Images   []string
}

// ReviewUseCase 评价用例
type ReviewUseCase struct {
	repo        review.Repository
	orderRepo   order.Repository
	productRepo product.Repository
	log         *zap.Logger
	now         func() time.Time
}

// NewReviewUseCase 创建用例
func NewReviewUseCase(repo review.Repository, orderRepo order.Repository, productRepo product.Repository, log *zap.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		repo:        repo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		log:         log,
		now:         time.Now,
	}
}

// List 商品评价，limit默认10，最大50
func (uc *ReviewUseCase) List(ctx context.Context, productID uint, limit int) (*ListResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	reviews, summary, err := uc.repo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		out[i] = toReviewDTO(r)
	}
	return &ListResponse{
		Reviews:       out,
		Total:         summary.Total,
		AverageRating: summary.AverageRating,
	}, nil
}

// Eligibility 当前用户能否评价该商品
func (uc *ReviewUseCase) Eligibility(ctx context.Context, userID, productID uint) (*EligibilityResponse, error) {
	items, err := uc.orderRepo.FindDeliveredItems(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &EligibilityResponse{Reason: ReasonNoDeliveredOrder}, nil
	}

	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	reviewed, err := uc.repo.ReviewedOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if !reviewed[id] {
			itemID := id
			return &EligibilityResponse{CanReview: true, OrderItemID: &itemID}, nil
		}
	}
	return &EligibilityResponse{Reason: ReasonAlreadyReviewed}, nil
}

// Create 发表评价
func (uc *ReviewUseCase) Create(ctx context.Context, req CreateRequest) (*ReviewDTO, error) {
	r := &review.Review{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Content:   strings.TrimSpace(req.Content),
		Images:    req.Images,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	itemID, err := uc.resolveOrderItem(ctx, req)
	if err != nil {
		return nil, err
	}
	r.OrderItemID = &itemID

	now := uc.now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	uc.log.Info("评价已发表", zap.Uint("review_id", r.ID), zap.Uint("product_id", r.ProductID), zap.Int("rating", r.Rating))
	created, err := uc.repo.FindByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	dto := toReviewDTO(created)
	return &dto, nil
}

// resolveOrderItem 校验明细属于当前用户、对应该商品且订单已送达
func (uc *ReviewUseCase) resolveOrderItem(ctx context.Context, req CreateRequest) (uint, error) {
	if req.OrderItemID == nil {
		el, err := uc.Eligibility(ctx, req.UserID, req.ProductID)
		if err != nil {
			return 0, err
		}
		if !el.CanReview {
			if el.Reason == ReasonAlreadyReviewed {
				return 0, review.ErrAlreadyReviewed
			}
			return 0, review.ErrNotEligible
		}
		return *el.OrderItemID, nil
	}

	item, o, err := uc.orderRepo.FindItem(ctx, *req.OrderItemID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return 0, review.ErrNotEligible
		}
		return 0, err
	}
	if o.UserID != req.UserID || item.ProductID != req.ProductID || o.Status != order.StatusDelivered {
		return 0, review.ErrNotEligible
	}
	return item.ID, nil
}

// Update 修改自己的评价
func (uc *ReviewUseCase) Update(ctx context.Context, req UpdateRequest) (*ReviewDTO, error) {
	r, err := uc.owned(ctx, req.ReviewID, req.UserID)
	if err != nil {
		return nil, err
	}
	r.Rating = req.Rating
	r.Content = strings.TrimSpace(req.Content)
	r.Images = req.Images
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	dto := toReviewDTO(r)
	return &dto, nil
}

// Delete 删除自己的评价
func (uc *ReviewUseCase) Delete(ctx context.Context, userID, reviewID uint) error {
	if _, err := uc.owned(ctx, reviewID, userID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, reviewID)
}

func (uc *ReviewUseCase) owned(ctx context.Context, reviewID, userID uint) (*review.Review, error) {
	r, err := uc.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, review.ErrNotReviewOwner
	}
	return r, nil
}

func toReviewDTO(r *review.Review) ReviewDTO {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return ReviewDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		ProductID:   r.ProductID,
		OrderItemID: r.OrderItemID,
		Rating:      r.Rating,
		Content:     r.Content,
		Images:      images,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
