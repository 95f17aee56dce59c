package coupon

import (
	"time"
)

// DiscountType 折扣类型
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Coupon 优惠券模板
type Coupon struct {
	ID                uint
	Code              string
	Name              string
	Description       string
	DiscountType      DiscountType
	DiscountValue     int64 // percentage时为百分比，fixed_amount时为金额
	MinPurchaseAmount int64
	MaxDiscountAmount int64 // percentage时的折扣上限，0表示不限
	ValidFrom         time.Time
	ValidUntil        time.Time
	UsageLimit        int // 最多发放张数，0表示不限
	UsageCount        int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate 校验优惠券配置
func (c *Coupon) Validate() error {
	if c.Code == "" || c.Name == "" {
		return ErrInvalidCoupon.WithMessage("优惠券代码和名称不能为空")
	}
	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountValue <= 0 || c.DiscountValue > 100 {
			return ErrInvalidCoupon.WithMessage("折扣百分比应在1-100之间")
		}
	case DiscountFixedAmount:
		if c.DiscountValue <= 0 {
			return ErrInvalidCoupon.WithMessage("折扣金额必须大于0")
		}
	default:
		return ErrInvalidCoupon.WithMessage("无效的折扣类型")
	}
	if !c.ValidUntil.After(c.ValidFrom) {
		return ErrInvalidCoupon.WithMessage("有效期结束时间必须晚于开始时间")
	}
	if c.MinPurchaseAmount < 0 || c.MaxDiscountAmount < 0 || c.UsageLimit < 0 {
		return ErrInvalidCoupon.WithMessage("金额和数量不能为负数")
	}
	return nil
}

// IsValidAt 是否处于启用状态且在有效期内
func (c *Coupon) IsValidAt(now time.Time) bool {
	return c.IsActive && !now.Before(c.ValidFrom) && now.Before(c.ValidUntil)
}

// IsExhausted 发放数量是否已达上限
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit
}

// Discount 计算订单商品总额可享受的折扣，结果不超过总额
func (c *Coupon) Discount(total int64) int64 {
	var d int64
	switch c.DiscountType {
	case DiscountPercentage:
		d = total * c.DiscountValue / 100
		if c.MaxDiscountAmount > 0 && d > c.MaxDiscountAmount {
			d = c.MaxDiscountAmount
		}
	case DiscountFixedAmount:
		d = c.DiscountValue
	}
	if d > total {
		d = total
	}
	if d < 0 {
		d = 0
	}
	return d
}

// UserCoupon 用户持有的优惠券
type UserCoupon struct {
	ID        uint
	UserID    uint
	CouponID  uint
	IsUsed    bool
	UsedAt    *time.Time
	OrderID   *uint
	CreatedAt time.Time
	Coupon    *Coupon
}
