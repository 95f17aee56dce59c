package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/cart"
	"github.com/xiebiao/mall/internal/domain/coupon"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/metrics"
	"github.com/xiebiao/mall/pkg/tracing"
)

// CreateOrderUseCase 下单用例
//
// 整个流程在一个事务中：先校验所有商品，全部通过后才扣减库存。
// 扣减使用条件UPDATE（stock_quantity >= ?），并发下单时只有库存足够的请求能成功，
// 任一步骤失败都会回滚，不会留下部分扣减的库存或订单。
type CreateOrderUseCase struct {
	productRepo product.Repository
	orderRepo   order.Repository
	couponRepo  coupon.Repository
	cartRepo    cart.Repository
	tx          application.Transactor
	cache       application.Cache
	publisher   order.EventPublisher
	log         *zap.Logger
	now         func() time.Time
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	productRepo product.Repository,
	orderRepo order.Repository,
	couponRepo coupon.Repository,
	cartRepo cart.Repository,
	tx application.Transactor,
	cache application.Cache,
	publisher order.EventPublisher,
	log *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		couponRepo:  couponRepo,
		cartRepo:    cartRepo,
		tx:          tx,
		cache:       cache,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "order", "CreateOrder",
		attribute.Int("user_id", int(req.UserID)), attribute.Int("lines", len(req.Items)))
	defer span.End()

	start := uc.now()
	o, err := uc.create(ctx, req)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, uc.now().Sub(start).Seconds())
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": apperrors.CodeOf(err)})
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderAmount, float64(o.FinalAmount))
	uc.log.Info("订单已创建",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Uint("user_id", o.UserID),
		zap.Int64("final_amount", o.FinalAmount),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	// 事务提交后再清缓存、发布事件
	evictProductCache(ctx, uc.cache, uc.log)
	if err := uc.publisher.Publish(ctx, order.NewEvent(order.EventCreated, o, "", uc.now())); err != nil {
		uc.log.Warn("发布下单事件失败", zap.Uint("order_id", o.ID), zap.Error(err))
	}

	return &CreateOrderResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		TotalAmount: o.FinalAmount,
		Status:      string(o.Status),
	}, nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
	}

	var created *order.Order
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		now := uc.now()

		// 1. 逐行校验，按请求顺序返回第一个错误
		items := make([]order.Item, len(req.Items))
		var total int64
		for i, line := range req.Items {
			p, err := uc.productRepo.FindByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if err := p.CheckPurchasable(line.Quantity); err != nil {
				return err
			}

			subtotal := p.Price * int64(line.Quantity)
			items[i] = order.Item{
				ProductID:    p.ID,
				ProductName:  p.Name,
				ProductImage: p.ImageURL,
				Price:        p.Price,
				Quantity:     line.Quantity,
				Color:        line.Color,
				Size:         line.Size,
				Subtotal:     subtotal,
			}
			total += subtotal
		}

		// 2. 折扣：优先使用优惠券
		discount := req.DiscountAmount
		if req.UserCouponID != nil {
			d, err := uc.couponDiscount(txCtx, req.UserID, *req.UserCouponID, total, now)
			if err != nil {
				return err
			}
			discount = d
		}
		amounts, err := order.CalculateAmounts(total, discount)
		if err != nil {
			return err
		}

		// 3. 全部校验通过后扣减库存
		for _, line := range req.Items {
			if err := uc.productRepo.DecreaseStock(txCtx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		// 4. 持久化订单
		o := order.NewOrder(order.GenerateOrderNo(now), req.UserID, items, amounts, req.Shipping, req.PaymentMethod, now)
		o.UserCouponID = req.UserCouponID
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		if req.UserCouponID != nil {
			if err := uc.couponRepo.MarkUsed(txCtx, *req.UserCouponID, o.ID, now); err != nil {
				return err
			}
		}

		// 5. 移除购物车中已下单的条目
		keys := make([]cart.LineKey, len(items))
		for i, it := range items {
			keys[i] = cart.LineKey{ProductID: it.ProductID, Color: it.Color, Size: it.Size}
		}
		if err := uc.cartRepo.DeleteLines(txCtx, req.UserID, keys); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// couponDiscount 校验用户优惠券并计算折扣
func (uc *CreateOrderUseCase) couponDiscount(ctx context.Context, userID, userCouponID uint, total int64, now time.Time) (int64, error) {
	held, err := uc.couponRepo.FindUserCoupon(ctx, userCouponID, userID)
	if err != nil {
		return 0, err
	}
	if held.IsUsed {
		return 0, coupon.ErrCouponUsed
	}
	c := held.Coupon
	if c == nil {
		return 0, coupon.ErrCouponNotFound
	}
	if !c.IsValidAt(now) {
		return 0, coupon.ErrCouponUnavailable.WithMessagef("优惠券「%s」不在有效期内或已停用", c.Name)
	}
	if total < c.MinPurchaseAmount {
		return 0, coupon.ErrMinPurchaseNotMet.WithMessagef("优惠券「%s」需满%d才能使用", c.Name, c.MinPurchaseAmount)
	}
	return c.Discount(total), nil
}
