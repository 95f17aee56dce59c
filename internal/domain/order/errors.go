package order

import (
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound           = apperrors.NotFound("订单不存在")
	ErrEmptyItems              = apperrors.BadRequest("订单商品不能为空")
	ErrInvalidQuantity         = apperrors.BadRequest("购买数量必须大于0")
	ErrNotCancellable          = apperrors.BadRequest("当前订单状态无法取消")
	ErrInvalidStatusTransition = apperrors.BadRequest("订单状态不允许此操作")
	ErrInvalidStatus           = apperrors.Validation("无效的订单状态")
	ErrDiscountExceedsTotal    = apperrors.BadRequest("折扣金额不能超过商品总额")

	// ErrStatusConflict 并发修改：条件更新时状态已被其他请求改变
	ErrStatusConflict = apperrors.Conflict("订单状态已变更，请刷新后重试")
)
