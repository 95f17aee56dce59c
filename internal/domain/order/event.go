package order

import (
	"context"
	"time"
)

// 订单事件路由键
const (
	EventCreated       = "order.created"
	EventCancelled     = "order.cancelled"
	EventStatusChanged = "order.status_changed"
)

// Event 订单领域事件，事务提交后发布
type Event struct {
	Type           string    `json:"type"`
	OrderID        uint      `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	UserID         uint      `json:"user_id"`
	Status         Status    `json:"status"`
	PreviousStatus Status    `json:"previous_status,omitempty"`
	FinalAmount    int64     `json:"final_amount"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewEvent 根据订单当前状态构建事件
func NewEvent(eventType string, o *Order, previous Status, now time.Time) Event {
	return Event{
		Type:           eventType,
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		Status:         o.Status,
		PreviousStatus: previous,
		FinalAmount:    o.FinalAmount,
		TrackingNumber: o.TrackingNumber,
		OccurredAt:     now,
	}
}

// EventPublisher 事件发布接口（RabbitMQ或进程内实现）
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
