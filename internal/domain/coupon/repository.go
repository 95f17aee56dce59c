package coupon

import (
	"context"
	"time"
)

// Repository 优惠券仓储接口
type Repository interface {
	Create(ctx context.Context, c *Coupon) error
	FindByID(ctx context.Context, id uint) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*Coupon, int64, error)

	// IncrementUsage 条件递增发放计数：usage_limit为0或usage_count < usage_limit
	IncrementUsage(ctx context.Context, id uint) error

	// Issue 发放给用户，重复发放返回ErrAlreadyIssued
	Issue(ctx context.Context, uc *UserCoupon) error

	// FindUserCoupon 查询用户持有的券（含券模板）
	FindUserCoupon(ctx context.Context, id, userID uint) (*UserCoupon, error)
	ListUserCoupons(ctx context.Context, userID uint) ([]*UserCoupon, error)

	// MarkUsed 条件更新 is_used = false → true，已使用返回ErrCouponUsed
	MarkUsed(ctx context.Context, id, orderID uint, now time.Time) error

	// Release 取消订单时归还优惠券
	Release(ctx context.Context, id uint) error
}
