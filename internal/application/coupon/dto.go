package coupon

import (
	"time"

	"github.com/xiebiao/mall/internal/domain/coupon"
)

// CouponDTO 优惠券模板
type CouponDTO struct {
	ID                uint      `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     int64     `json:"discountValue"`
	MinPurchaseAmount int64     `json:"minPurchaseAmount"`
	MaxDiscountAmount int64     `json:"maxDiscountAmount"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
	UsageLimit        int       `json:"usageLimit"`
	UsageCount        int       `json:"usageCount"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
}

// UserCouponDTO 用户持有的优惠券
type UserCouponDTO struct {
	ID        uint       `json:"id"`
	IsUsed    bool       `json:"isUsed"`
	IsUsable  bool       `json:"isUsable"` // 未使用且在有效期内
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	OrderID   *uint      `json:"orderId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Coupon    *CouponDTO `json:"coupon"`
}

// ListCouponsResponse 管理员优惠券列表
type ListCouponsResponse struct {
	Items      []CouponDTO `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// CouponInput 创建/更新优惠券
type CouponInput struct {
	Code              string
	Name              string
	Description       string
	DiscountType      string
	DiscountValue     int64
	MinPurchaseAmount int64
	MaxDiscountAmount int64
	ValidFrom         time.Time
	ValidUntil        time.Time
	UsageLimit        int
	IsActive          bool
}

func toCouponDTO(c *coupon.Coupon) CouponDTO {
	return CouponDTO{
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
	}
}

func toUserCouponDTO(uc *coupon.UserCoupon, now time.Time) UserCouponDTO {
	dto := UserCouponDTO{
		ID:        uc.ID,
		IsUsed:    uc.IsUsed,
		UsedAt:    uc.UsedAt,
		OrderID:   uc.OrderID,
		CreatedAt: uc.CreatedAt,
	}
	if uc.Coupon != nil {
		c := toCouponDTO(uc.Coupon)
		dto.Coupon = &c
		dto.IsUsable = !uc.IsUsed && uc.Coupon.IsValidAt(now)
	}
	return dto
}
