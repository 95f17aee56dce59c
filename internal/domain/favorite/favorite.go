package favorite

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// Favorite 收藏
type Favorite struct {
	ID        uint
	UserID    uint
	ProductID uint
	CreatedAt time.Time
}

var (
	ErrAlreadyFavorited = apperrors.BadRequest("已经收藏过该商品")
	ErrFavoriteNotFound = apperrors.NotFound("未收藏该商品")
)

// Repository 收藏仓储接口
type Repository interface {
	// Add 重复收藏返回ErrAlreadyFavorited
	Add(ctx context.Context, f *Favorite) error

	// Remove 未收藏返回ErrFavoriteNotFound
	Remove(ctx context.Context, userID, productID uint) error

	Exists(ctx context.Context, userID, productID uint) (bool, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*Favorite, int64, error)
}
