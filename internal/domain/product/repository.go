package product

import (
	"context"
)

// ListFilter 商品列表查询条件
type ListFilter struct {
	Category   string
	Search     string // 按名称模糊匹配
	ActiveOnly bool
	Offset     int
	Limit      int
}

// Repository 商品仓储接口
// 库存变更都是带条件的原子UPDATE，调用方通过context传递事务
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)

	// DecreaseStock 原子扣减：stock_quantity >= quantity 时才扣减，否则返回ErrInsufficientStock
	DecreaseStock(ctx context.Context, id uint, quantity int) error

	// IncreaseStock 取消订单时归还库存
	IncreaseStock(ctx context.Context, id uint, quantity int) error

	IncrementViewCount(ctx context.Context, id uint) error
}
