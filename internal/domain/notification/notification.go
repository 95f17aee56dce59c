package notification

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 通知类型
const (
	TypeOrder  = "order"
	TypeCoupon = "coupon"
	TypeSystem = "system"
)

// Notification 站内通知
type Notification struct {
	ID        uint
	UserID    uint
	Type      string
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

// ListFilter 通知列表查询条件
type ListFilter struct {
	UserID     uint
	UnreadOnly bool
	Offset     int
	Limit      int
}

var ErrNotificationNotFound = apperrors.NotFound("通知不存在")

// Repository 通知仓储接口
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, filter ListFilter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// MarkRead / Delete 只操作该用户自己的通知，否则返回ErrNotificationNotFound
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id, userID uint) error
}
