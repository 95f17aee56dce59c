package mysql

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/order"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// orderRepository 订单仓储实现
// Order和OrderItem是聚合关系，一起保存；查询时Preload明细避免N+1
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单，GORM会一并保存Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.Conflict("订单号冲突，请重试")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *orderRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*order.Order, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id, userID)
}

// UpdateStatus 条件更新状态及相关字段
// WHERE id = ? AND status = ? 保证并发取消/发货时只有一个请求生效
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.Status) error {
	result := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Updates(map[string]interface{}{
			"status":          string(o.Status),
			"payment_status":  string(o.PaymentStatus),
			"tracking_number": o.TrackingNumber,
			"courier":         o.Courier,
			"cancel_reason":   o.CancelReason,
			"paid_at":         o.PaidAt,
			"shipped_at":      o.ShippedAt,
			"delivered_at":    o.DeliveredAt,
			"cancelled_at":    o.CancelledAt,
			"updated_at":      o.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrStatusConflict
	}
	return nil
}

// List 分页查询，COUNT与列表查询并行执行（两个查询各自占用连接，不能在事务中调用）
func (r *orderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&OrderModel{})
		if filter.UserID > 0 {
			db = db.Where("user_id = ?", filter.UserID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", string(filter.Status))
		}
		return db
	}

	var (
		total  int64
		models []OrderModel
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return scope(dbFrom(egCtx, r.db)).Count(&total).Error
	})
	eg.Go(func() error {
		query := scope(dbFrom(egCtx, r.db)).Preload("Items").Order("created_at DESC").Order("id DESC")
		return pageQuery(query, filter.Offset, filter.Limit).Find(&models).Error
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// FindDeliveredItems 用户已送达订单中某商品的明细
func (r *orderRepository) FindDeliveredItems(ctx context.Context, userID, productID uint) ([]order.Item, error) {
	var models []OrderItemModel
	err := dbFrom(ctx, r.db).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, string(order.StatusDelivered), productID).
		Order("order_items.id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	items := make([]order.Item, len(models))
	for i := range models {
		items[i] = toOrderItemEntity(&models[i])
	}
	return items, nil
}

// FindItem 查询订单明细及其订单（不含其他明细）
func (r *orderRepository) FindItem(ctx context.Context, itemID uint) (*order.Item, *order.Order, error) {
	db := dbFrom(ctx, r.db)

	var itemModel OrderItemModel
	if err := db.First(&itemModel, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, order.ErrOrderNotFound
		}
		return nil, nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	var orderModel OrderModel
	if err := db.First(&orderModel, itemModel.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, order.ErrOrderNotFound
		}
		return nil, nil, apperrors.Wrap(err, "查询订单失败")
	}

	item := toOrderItemEntity(&itemModel)
	return &item, toOrderEntity(&orderModel), nil
}

func (r *orderRepository) first(ctx context.Context, query string, args ...interface{}) (*order.Order, error) {
	var model OrderModel
	err := dbFrom(ctx, r.db).Preload("Items").Where(query, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Quantity:     item.Quantity,
			Color:        item.Color,
			Size:         item.Size,
			Subtotal:     item.Subtotal,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DiscountAmount:  o.DiscountAmount,
		ShippingFee:     o.ShippingFee,
		FinalAmount:     o.FinalAmount,
		RecipientName:   o.Shipping.RecipientName,
		Phone:           o.Shipping.Phone,
		PostalCode:      o.Shipping.PostalCode,
		Address:         o.Shipping.Address,
		AddressDetail:   o.Shipping.AddressDetail,
		DeliveryMessage: o.Shipping.DeliveryMessage,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   string(o.PaymentStatus),
		UserCouponID:    o.UserCouponID,
		TrackingNumber:  o.TrackingNumber,
		Courier:         o.Courier,
		CancelReason:    o.CancelReason,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i := range m.Items {
		items[i] = toOrderItemEntity(&m.Items[i])
	}

	return &order.Order{
		ID:             m.ID,
		UserID:         m.UserID,
		OrderNumber:    m.OrderNumber,
		Status:         order.Status(m.Status),
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		ShippingFee:    m.ShippingFee,
		FinalAmount:    m.FinalAmount,
		Shipping: order.ShippingAddress{
			RecipientName:   m.RecipientName,
			Phone:           m.Phone,
			PostalCode:      m.PostalCode,
			Address:         m.Address,
			AddressDetail:   m.AddressDetail,
			DeliveryMessage: m.DeliveryMessage,
		},
		PaymentMethod:  m.PaymentMethod,
		PaymentStatus:  order.PaymentStatus(m.PaymentStatus),
		UserCouponID:   m.UserCouponID,
		TrackingNumber: m.TrackingNumber,
		Courier:        m.Courier,
		CancelReason:   m.CancelReason,
		Items:          items,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		PaidAt:         m.PaidAt,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
		CancelledAt:    m.CancelledAt,
	}
}

func toOrderItemEntity(m *OrderItemModel) order.Item {
	return order.Item{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		ProductImage: m.ProductImage,
		Price:        m.Price,
		Quantity:     m.Quantity,
		Color:        m.Color,
		Size:         m.Size,
		Subtotal:     m.Subtotal,
	}
}
