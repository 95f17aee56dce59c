package coupon

import (
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

var (
	ErrCouponNotFound     = apperrors.NotFound("优惠券不存在")
	ErrUserCouponNotFound = apperrors.NotFound("未持有该优惠券")
	ErrCodeDuplicate      = apperrors.Conflict("优惠券代码已存在")
	ErrAlreadyIssued      = apperrors.Conflict("已领取过该优惠券")
	ErrInvalidCoupon      = apperrors.Validation("优惠券配置无效")
	ErrCouponUnavailable  = apperrors.BadRequest("优惠券不可用")
	ErrCouponExhausted    = apperrors.BadRequest("优惠券已领完")
	ErrCouponUsed         = apperrors.BadRequest("优惠券已使用")
	ErrMinPurchaseNotMet  = apperrors.BadRequest("未达到优惠券最低消费金额")
)
