package dto

import "time"

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	ProductID uint   `json:"productId" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"1"`
	Color     string `json:"color" binding:"max=50"`
	Size      string `json:"size" binding:"max=20"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// CouponRequest 管理员创建/更新优惠券
type CouponRequest struct {
	Code              string    `json:"code" binding:"required,max=50" example:"WELCOME10"`
	Name              string    `json:"name" binding:"required,max=100" example:"신규가입 10% 할인"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discountType" binding:"required,oneof=percentage fixed_amount" example:"percentage"`
	DiscountValue     int64     `json:"discountValue" binding:"required,min=1" example:"10"`
	MinPurchaseAmount int64     `json:"minPurchaseAmount" binding:"min=0"`
	MaxDiscountAmount int64     `json:"maxDiscountAmount" binding:"min=0"`
	ValidFrom         time.Time `json:"validFrom" binding:"required"`
	ValidUntil        time.Time `json:"validUntil" binding:"required"`
	UsageLimit        int       `json:"usageLimit" binding:"min=0"`
	IsActive          *bool     `json:"isActive"`
}

// IssueCouponRequest 发放优惠券给用户
type IssueCouponRequest struct {
	UserID uint `json:"userId" binding:"required" example:"7"`
}

// ClaimCouponRequest 用户通过券码领取
type ClaimCouponRequest struct {
	Code string `json:"code" binding:"required,max=50" example:"WELCOME10"`
}

// CreateReviewRequest 发表评价
type CreateReviewRequest struct {
	ProductID   uint     `json:"productId" binding:"required" example:"1"`
	OrderItemID *uint    `json:"orderItemId"`
	Rating      int      `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Content     string   `json:"content" binding:"max=2000"`
	Images      []string `json:"images" binding:"max=10,dive,url"`
}

// UpdateReviewRequest 修改评价
type UpdateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5" example:"4"`
	Content string   `json:"content" binding:"max=2000"`
	Images  []string `json:"images" binding:"max=10,dive,url"`
}

// OffsetQuery limit/offset分页参数
type OffsetQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// NotificationQuery 通知列表参数
type NotificationQuery struct {
	OffsetQuery
	UnreadOnly bool `form:"unreadOnly"`
}

// MarkAllReadResponse 全部已读结果
type MarkAllReadResponse struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}

// HealthResponse 健康检查
type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services"`
}

// PageQuery page/limit分页参数
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
