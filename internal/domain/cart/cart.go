package cart

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// Item 购物车条目，同一商品的不同颜色/尺码是不同条目
type Item struct {
	ID        uint
	UserID    uint
	ProductID uint
	Quantity  int
	Color     string
	Size      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineKey 条目唯一键
type LineKey struct {
	ProductID uint
	Color     string
	Size      string
}

// Key 返回条目唯一键
func (i *Item) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

var (
	ErrItemNotFound    = apperrors.NotFound("购物车商品不存在")
	ErrInvalidQuantity = apperrors.BadRequest("数量必须大于0")
)

// Repository 购物车仓储接口
type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)
	FindByKey(ctx context.Context, userID uint, key LineKey) (*Item, error)
	Create(ctx context.Context, item *Item) error

	// UpdateQuantity 只更新该用户自己的条目，否则返回ErrItemNotFound
	UpdateQuantity(ctx context.Context, id, userID uint, quantity int) error
	Delete(ctx context.Context, id, userID uint) error
	Clear(ctx context.Context, userID uint) error

	// DeleteLines 删除已下单的条目
	DeleteLines(ctx context.Context, userID uint, keys []LineKey) error
}
