package order

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/coupon"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/pkg/metrics"
)

// UpdateOrderStatusUseCase 管理员变更订单状态
// 取消与用户取消走同一套库存归还逻辑
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	tx        application.Transactor
	cache     application.Cache
	canceller *canceller
	publisher order.EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewUpdateOrderStatusUseCase 创建状态变更用例
func NewUpdateOrderStatusUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	couponRepo coupon.Repository,
	tx application.Transactor,
	cache application.Cache,
	publisher order.EventPublisher,
	log *zap.Logger,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		tx:        tx,
		cache:     cache,
		canceller: &canceller{orderRepo: orderRepo, productRepo: productRepo, couponRepo: couponRepo},
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// UpdateStatusRequest 状态变更请求
type UpdateStatusRequest struct {
	OrderID        uint
	Status         string
	TrackingNumber string
	Courier        string
	Reason         string
}

// Execute 执行状态变更
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderDTO, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, order.ErrInvalidStatus
	}

	var updated *order.Order
	var previous order.Status
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		previous = o.Status
		now := uc.now()

		switch target {
		case order.StatusCancelled:
			reason := strings.TrimSpace(req.Reason)
			if reason == "" {
				reason = "管理员取消"
			}
			if err := uc.canceller.cancel(txCtx, o, reason, now); err != nil {
				return err
			}
			updated = o
			return nil
		case order.StatusShipped:
			err = o.Ship(strings.TrimSpace(req.TrackingNumber), strings.TrimSpace(req.Courier), now)
		default:
			err = o.TransitionTo(target, now)
		}
		if err != nil {
			return err
		}
		if err := uc.orderRepo.UpdateStatus(txCtx, o, previous); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventType := order.EventStatusChanged
	if target == order.StatusCancelled {
		eventType = order.EventCancelled
		metrics.IncCounter(metrics.OrdersCancelledTotal)
		evictProductCache(ctx, uc.cache, uc.log)
	}
	uc.log.Info("订单状态已变更",
		zap.Uint("order_id", updated.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
	)

	if err := uc.publisher.Publish(ctx, order.NewEvent(eventType, updated, previous, uc.now())); err != nil {
		uc.log.Warn("发布订单状态事件失败", zap.Uint("order_id", updated.ID), zap.Error(err))
	}

	dto := toOrderDTO(updated)
	return &dto, nil
}
