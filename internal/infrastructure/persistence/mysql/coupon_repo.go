package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/coupon"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) coupon.Repository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	model := toCouponModel(c)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return coupon.ErrCodeDuplicate
		}
		return apperrors.Wrap(err, "创建优惠券失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uint) (*coupon.Coupon, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *couponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	model := toCouponModel(c)
	result := dbFrom(ctx, r.db).Model(&CouponModel{ID: c.ID}).
		Select("code", "name", "description", "discount_type", "discount_value", "min_purchase_amount",
			"max_discount_amount", "valid_from", "valid_until", "usage_limit", "is_active").
		Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return coupon.ErrCodeDuplicate
		}
		return apperrors.Wrap(result.Error, "更新优惠券失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&CouponModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除优惠券失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *couponRepository) List(ctx context.Context, offset, limit int) ([]*coupon.Coupon, int64, error) {
	query := dbFrom(ctx, r.db).Model(&CouponModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询优惠券总数失败")
	}

	var models []CouponModel
	if err := pageQuery(query.Order("created_at DESC"), offset, limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询优惠券列表失败")
	}
	coupons := make([]*coupon.Coupon, len(models))
	for i := range models {
		coupons[i] = toCouponEntity(&models[i])
	}
	return coupons, total, nil
}

// IncrementUsage 条件递增，达到发放上限时不更新
func (r *couponRepository) IncrementUsage(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Model(&CouponModel{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新优惠券发放数量失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponExhausted
	}
	return nil
}

func (r *couponRepository) Issue(ctx context.Context, uc *coupon.UserCoupon) error {
	model := &UserCouponModel{UserID: uc.UserID, CouponID: uc.CouponID}
	if err := dbFrom(ctx, r.db).Omit("Coupon").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return coupon.ErrAlreadyIssued
		}
		return apperrors.Wrap(err, "发放优惠券失败")
	}
	uc.ID = model.ID
	uc.CreatedAt = model.CreatedAt
	return nil
}

func (r *couponRepository) FindUserCoupon(ctx context.Context, id, userID uint) (*coupon.UserCoupon, error) {
	var model UserCouponModel
	err := dbFrom(ctx, r.db).Preload("Coupon").Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrUserCouponNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户优惠券失败")
	}
	return toUserCouponEntity(&model), nil
}

func (r *couponRepository) ListUserCoupons(ctx context.Context, userID uint) ([]*coupon.UserCoupon, error) {
	var models []UserCouponModel
	err := dbFrom(ctx, r.db).Preload("Coupon").Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户优惠券失败")
	}
	result := make([]*coupon.UserCoupon, len(models))
	for i := range models {
		result[i] = toUserCouponEntity(&models[i])
	}
	return result, nil
}

// MarkUsed 条件更新 is_used = false，防止同一张券并发用于两个订单
func (r *couponRepository) MarkUsed(ctx context.Context, id, orderID uint, now time.Time) error {
	result := dbFrom(ctx, r.db).Model(&UserCouponModel{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{"is_used": true, "used_at": now, "order_id": orderID})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "使用优惠券失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponUsed
	}
	return nil
}

func (r *couponRepository) Release(ctx context.Context, id uint) error {
	err := dbFrom(ctx, r.db).Model(&UserCouponModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_used": false, "used_at": nil, "order_id": nil}).Error
	if err != nil {
		return apperrors.Wrap(err, "归还优惠券失败")
	}
	return nil
}

func (r *couponRepository) first(ctx context.Context, query string, args ...interface{}) (*coupon.Coupon, error) {
	var model CouponModel
	if err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, apperrors.Wrap(err, "查询优惠券失败")
	}
	return toCouponEntity(&model), nil
}

func toCouponModel(c *coupon.Coupon) *CouponModel {
	return &CouponModel{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		Description:       c.Description,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		UsageLimit:        c.UsageLimit,
		UsageCount:        c.UsageCount,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toCouponEntity(m *CouponModel) *coupon.Coupon {
	return &coupon.Coupon{
		ID:                m.ID,
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		DiscountType:      coupon.DiscountType(m.DiscountType),
		DiscountValue:     m.DiscountValue,
		MinPurchaseAmount: m.MinPurchaseAmount,
		MaxDiscountAmount: m.MaxDiscountAmount,
		ValidFrom:         m.ValidFrom,
		ValidUntil:        m.ValidUntil,
		UsageLimit:        m.UsageLimit,
		UsageCount:        m.UsageCount,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toUserCouponEntity(m *UserCouponModel) *coupon.UserCoupon {
	uc := &coupon.UserCoupon{
		ID:        m.ID,
		UserID:    m.UserID,
		CouponID:  m.CouponID,
		IsUsed:    m.IsUsed,
		UsedAt:    m.UsedAt,
		OrderID:   m.OrderID,
		CreatedAt: m.CreatedAt,
	}
	if m.Coupon.ID != 0 {
		uc.Coupon = toCouponEntity(&m.Coupon)
	}
	return uc
}
