package product

import (
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound   = apperrors.NotFound("商品不存在")
	ErrProductInactive   = apperrors.BadRequest("商品已下架")
	ErrInsufficientStock = apperrors.BadRequest("库存不足")
	ErrInvalidName       = apperrors.Validation("商品名称不能为空")
	ErrInvalidPrice      = apperrors.Validation("价格必须大于0")
	ErrInvalidStock      = apperrors.Validation("库存不能为负数")
	ErrInvalidQuantity   = apperrors.BadRequest("购买数量必须大于0")
)
