package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application/apptest"
	appnotification "github.com/xiebiao/mall/internal/application/notification"
	apporder "github.com/xiebiao/mall/internal/application/order"
	"github.com/xiebiao/mall/internal/domain/notification"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/infrastructure/messaging"
)

func TestOrderEventHandler_Messages(t *testing.T) {
	tests := []struct {
		name      string
		evt       order.Event
		wantTitle string
		contains  string
	}{
		{"下单", order.Event{Type: order.EventCreated, Status: order.StatusPending, FinalAmount: 33000}, "订单已提交", "33000"},
		{"取消", order.Event{Type: order.EventCancelled, Status: order.StatusCancelled}, "订单已取消", "已取消"},
		{"支付", order.Event{Type: order.EventStatusChanged, Status: order.StatusPaid}, "支付成功", "支付成功"},
		{"发货", order.Event{Type: order.EventStatusChanged, Status: order.StatusShipped, TrackingNumber: "6012345"}, "商品已发货", "6012345"},
		{"送达", order.Event{Type: order.EventStatusChanged, Status: order.StatusDelivered}, "商品已送达", "评价"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := apptest.NewStore()
			h := appnotification.NewOrderEventHandler(store.NotificationRepo(), zap.NewNop())
			tt.evt.UserID = 7
			tt.evt.OrderID = 42
			tt.evt.OrderNumber = "20261017-ABCDEF01"
			tt.evt.OccurredAt = time.Now()

			require.NoError(t, h.Handle(context.Background(), tt.evt))
			got := store.Notifications(7)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantTitle, got[0].Title)
			assert.Contains(t, got[0].Message, tt.contains)
			assert.Contains(t, got[0].Message, "20261017-ABCDEF01")
			assert.Equal(t, "/orders/42", got[0].Link)
			assert.Equal(t, notification.TypeOrder, got[0].Type)
		})
	}
}

func TestOrderEventHandler_IgnoresUnknown(t *testing.T) {
	store := apptest.NewStore()
	h := appnotification.NewOrderEventHandler(store.NotificationRepo(), zap.NewNop())

	require.NoError(t, h.Handle(context.Background(), order.Event{Type: "order.unknown", UserID: 7}))
	require.NoError(t, h.Handle(context.Background(), order.Event{Type: order.EventStatusChanged, Status: order.StatusRefunded, UserID: 7}))
	assert.Empty(t, store.Notifications(7))
}

// 进程内发布：下单和取消后用户收到两条通知
func TestOrderFlow_DeliversNotificationsInProcess(t *testing.T) {
	store := apptest.NewStore()
	log := zap.NewNop()
	handler := appnotification.NewOrderEventHandler(store.NotificationRepo(), log)
	publisher := messaging.NewLocalPublisher(handler, log)
	tx := store.Transactor()
	cache := apptest.NewCache()

	create := apporder.NewCreateOrderUseCase(store.Products(), store.Orders(), store.Coupons(), store.Cart(), tx, cache, publisher, log)
	cancel := apporder.NewCancelOrderUseCase(store.Orders(), store.Products(), store.Coupons(), tx, cache, publisher, log)
	p := store.AddProduct(product.Product{Name: "셔츠", Price: 30000, StockQuantity: 5, IsActive: true})
	ctx := context.Background()

	resp, err := create.Execute(ctx, apporder.CreateOrderRequest{
		UserID: 7,
		Items:  []apporder.ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, cancel.Execute(ctx, apporder.CancelOrderRequest{UserID: 7, OrderID: resp.OrderID}))

	uc := appnotification.NewNotificationUseCase(store.NotificationRepo())
	list, err := uc.List(ctx, appnotification.ListRequest{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, int64(2), list.UnreadCount)
	assert.Equal(t, "订单已取消", list.Items[0].Title)
}

func TestNotificationUseCase(t *testing.T) {
	store := apptest.NewStore()
	repo := store.NotificationRepo()
	uc := appnotification.NewNotificationUseCase(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &notification.Notification{UserID: 1, Type: notification.TypeSystem, Title: "공지"}))
	}
	other := &notification.Notification{UserID: 2, Type: notification.TypeSystem, Title: "다른 사용자"}
	require.NoError(t, repo.Create(ctx, other))

	list, err := uc.List(ctx, appnotification.ListRequest{UserID: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Items, 2)

	first := list.Items[0].ID
	require.NoError(t, uc.MarkRead(ctx, 1, first))
	assert.ErrorIs(t, uc.MarkRead(ctx, 1, other.ID), notification.ErrNotificationNotFound)

	unread, err := uc.List(ctx, appnotification.ListRequest{UserID: 1, UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.Total)
	assert.Equal(t, int64(2), unread.UnreadCount)

	n, err := uc.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, uc.Delete(ctx, 1, first))
	assert.ErrorIs(t, uc.Delete(ctx, 1, first), notification.ErrNotificationNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 1, other.ID), notification.ErrNotificationNotFound)

	list, err = uc.List(ctx, appnotification.ListRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Zero(t, list.UnreadCount)
}
