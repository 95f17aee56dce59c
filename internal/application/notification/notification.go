package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/notification"
	"github.com/xiebiao/mall/internal/domain/order"
)

// NotificationDTO 通知
type NotificationDTO struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListResponse 通知列表
type ListResponse struct {
	Items       []NotificationDTO `json:"items"`
	Total       int64             `json:"total"`
	UnreadCount int64             `json:"unreadCount"`
}

// ListRequest 查询参数
type ListRequest struct {
	UserID     uint
	Limit      int
	Offset     int
	UnreadOnly bool
}

// NotificationUseCase 用户通知
type NotificationUseCase struct {
	repo notification.Repository
}

// NewNotificationUseCase 创建用例
func NewNotificationUseCase(repo notification.Repository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List 通知列表，limit默认20，最大100
func (uc *NotificationUseCase) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := uc.repo.List(ctx, notification.ListFilter{
		UserID:     req.UserID,
		UnreadOnly: req.UnreadOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]NotificationDTO, len(items))
	for i, n := range items {
		out[i] = NotificationDTO{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return &ListResponse{Items: out, Total: total, UnreadCount: unread}, nil
}

// MarkRead 标记已读
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id uint) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead 全部标记已读，返回更新条数
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

// Delete 删除通知
func (uc *NotificationUseCase) Delete(ctx context.Context, userID, id uint) error {
	return uc.repo.Delete(ctx, id, userID)
}

// OrderEventHandler 把订单事件转换为站内通知
// 由RabbitMQ消费者（cmd/worker）或进程内发布者调用
type OrderEventHandler struct {
	repo notification.Repository
	log  *zap.Logger
}

// NewOrderEventHandler 创建处理器
func NewOrderEventHandler(repo notification.Repository, log *zap.Logger) *OrderEventHandler {
	return &OrderEventHandler{repo: repo, log: log}
}

// Handle 写入通知，无需通知的事件直接忽略
func (h *OrderEventHandler) Handle(ctx context.Context, evt order.Event) error {
	title, message, ok := orderMessage(evt)
	if !ok {
		h.log.Debug("忽略订单事件", zap.String("type", evt.Type), zap.String("status", string(evt.Status)))
		return nil
	}

	n := &notification.Notification{
		UserID:    evt.UserID,
		Type:      notification.TypeOrder,
		Title:     title,
		Message:   message,
		Link:      fmt.Sprintf("/orders/%d", evt.OrderID),
		CreatedAt: evt.OccurredAt,
	}
	if err := h.repo.Create(ctx, n); err != nil {
		return err
	}
	h.log.Info("订单通知已创建",
		zap.Uint("notification_id", n.ID),
		zap.Uint("order_id", evt.OrderID),
		zap.String("type", evt.Type),
	)
	return nil
}

func orderMessage(evt order.Event) (title, message string, ok bool) {
	switch evt.Type {
	case order.EventCreated:
		return "订单已提交", fmt.Sprintf("订单%s已提交，应付金额%d，请尽快完成支付。", evt.OrderNumber, evt.FinalAmount), true
	case order.EventCancelled:
		return "订单已取消", fmt.Sprintf("订单%s已取消。", evt.OrderNumber), true
	case order.EventStatusChanged:
	default:
		return "", "", false
	}

	switch evt.Status {
	case order.StatusPaid:
		return "支付成功", fmt.Sprintf("订单%s已支付成功，我们将尽快为您备货。", evt.OrderNumber), true
	case order.StatusPreparing:
		return "商品备货中", fmt.Sprintf("订单%s的商品正在备货。", evt.OrderNumber), true
	case order.StatusShipped:
		msg := fmt.Sprintf("订单%s已发货。", evt.OrderNumber)
		if evt.TrackingNumber != "" {
			msg = fmt.Sprintf("订单%s已发货，运单号：%s。", evt.OrderNumber, evt.TrackingNumber)
		}
		return "商品已发货", msg, true
	case order.StatusDelivered:
		return "商品已送达", fmt.Sprintf("订单%s已送达，欢迎发表评价。", evt.OrderNumber), true
	}
	return "", "", false
}
