package order

import (
	"context"
)

// ListFilter 订单列表查询条件，UserID为0表示不限用户（管理员）
type ListFilter struct {
	UserID uint
	Status Status
	Offset int
	Limit  int
}

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单及明细（需在事务中调用）
	Create(ctx context.Context, o *Order) error

	// FindByID 不存在时返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByIDForUser 只返回该用户的订单，不属于该用户同样返回ErrOrderNotFound
	FindByIDForUser(ctx context.Context, id, userID uint) (*Order, error)

	// UpdateStatus 条件更新：WHERE id = ? AND status = from
	// 状态已被其他请求修改时返回ErrStatusConflict
	UpdateStatus(ctx context.Context, o *Order, from Status) error

	// List 按创建时间倒序分页
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)

	// FindDeliveredItems 用户已送达订单中某商品的明细（评价资格判断）
	FindDeliveredItems(ctx context.Context, userID, productID uint) ([]Item, error)

	// FindItem 查询单条订单明细及其所属订单的用户和状态
	FindItem(ctx context.Context, itemID uint) (*Item, *Order, error)
}
