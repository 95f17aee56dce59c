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
	"github.com/xiebiao/mall/pkg/tracing"
)

// CancelOrderUseCase 用户取消订单
// 订单状态为pending/paid/preparing时可取消，库存按订单明细归还
type CancelOrderUseCase struct {
	orderRepo order.Repository
	tx        application.Transactor
	cache     application.Cache
	canceller *canceller
	publisher order.EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	couponRepo coupon.Repository,
	tx application.Transactor,
	cache application.Cache,
	publisher order.EventPublisher,
	log *zap.Logger,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		tx:        tx,
		cache:     cache,
		canceller: &canceller{orderRepo: orderRepo, productRepo: productRepo, couponRepo: couponRepo},
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// CancelOrderRequest 取消请求
type CancelOrderRequest struct {
	UserID  uint
	OrderID uint
	Reason  string
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, req CancelOrderRequest) error {
	ctx, span := tracing.StartSpan(ctx, "order", "CancelOrder")
	defer span.End()

	var cancelled *order.Order
	var previous order.Status
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByIDForUser(txCtx, req.OrderID, req.UserID)
		if err != nil {
			return err
		}
		previous = o.Status
		if err := uc.canceller.cancel(txCtx, o, req.Reason, uc.now()); err != nil {
			return err
		}
		cancelled = o
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	metrics.IncCounter(metrics.OrdersCancelledTotal)
	evictProductCache(ctx, uc.cache, uc.log)
	uc.log.Info("订单已取消",
		zap.Uint("order_id", cancelled.ID),
		zap.Uint("user_id", req.UserID),
		zap.String("previous_status", string(previous)),
	)

	if err := uc.publisher.Publish(ctx, order.NewEvent(order.EventCancelled, cancelled, previous, uc.now())); err != nil {
		uc.log.Warn("发布取消事件失败", zap.Uint("order_id", cancelled.ID), zap.Error(err))
	}
	return nil
}

// canceller 取消订单的事务内步骤，用户取消与管理员取消共用
type canceller struct {
	orderRepo   order.Repository
	productRepo product.Repository
	couponRepo  coupon.Repository
}

// cancel 必须在事务中调用：变更状态、归还库存、归还优惠券
func (c *canceller) cancel(ctx context.Context, o *order.Order, reason string, now time.Time) error {
	from := o.Status
	if err := o.Cancel(strings.TrimSpace(reason), now); err != nil {
		return err
	}

	// 条件更新防止同一订单被并发取消两次而重复归还库存
	if err := c.orderRepo.UpdateStatus(ctx, o, from); err != nil {
		return err
	}

	for _, item := range o.Items {
		if err := c.productRepo.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if o.UserCouponID != nil {
		if err := c.couponRepo.Release(ctx, *o.UserCouponID); err != nil {
			return err
		}
	}
	return nil
}
