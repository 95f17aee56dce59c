package order

import (
	"time"
)

// Status 订单状态
// 流转：pending → paid → preparing → shipped → delivered
// pending | paid | preparing 可取消；shipped之后不可回退；refunded为保留终态
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// transitions 合法的状态转换
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusRefunded:  {},
}

// IsValid 是否为已知状态
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// Label 状态显示名称
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "待付款"
	case StatusPaid:
		return "已付款"
	case StatusPreparing:
		return "备货中"
	case StatusShipped:
		return "已发货"
	case StatusDelivered:
		return "已送达"
	case StatusCancelled:
		return "已取消"
	case StatusRefunded:
		return "已退款"
	default:
		return "未知状态"
	}
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ShippingAddress 收货信息
type ShippingAddress struct {
	RecipientName   string
	Phone           string
	PostalCode      string
	Address         string
	AddressDetail   string
	DeliveryMessage string
}

// Order 订单实体（聚合根）
// 金额关系：FinalAmount = TotalAmount + ShippingFee - DiscountAmount
type Order struct {
	ID             uint
	UserID         uint
	OrderNumber    string
	Status         Status
	TotalAmount    int64
	DiscountAmount int64
	ShippingFee    int64
	FinalAmount    int64
	Shipping       ShippingAddress
	PaymentMethod  string
	PaymentStatus  PaymentStatus
	UserCouponID   *uint
	TrackingNumber string
	Courier        string
	CancelReason   string
	Items          []Item
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// Item 订单明细（下单时的商品快照，创建后不再修改）
type Item struct {
	ID           uint
	OrderID      uint
	ProductID    uint
	ProductName  string
	ProductImage string
	Price        int64 // 下单时单价
	Quantity     int
	Color        string
	Size         string
	Subtotal     int64
}

// NewOrder 创建待付款订单
func NewOrder(orderNumber string, userID uint, items []Item, amounts Amounts, shipping ShippingAddress, paymentMethod string, now time.Time) *Order {
	return &Order{
		OrderNumber:    orderNumber,
		UserID:         userID,
		Status:         StatusPending,
		TotalAmount:    amounts.Total,
		DiscountAmount: amounts.Discount,
		ShippingFee:    amounts.ShippingFee,
		FinalAmount:    amounts.Final,
		Shipping:       shipping,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  PaymentPending,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsCancellable 发货前的订单可以取消
func (o *Order) IsCancellable() bool {
	return o.CanTransitionTo(StatusCancelled)
}

// TransitionTo 状态转换，并记录对应时间点
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition.WithMessagef("订单状态为%s，不能变更为%s", o.Status.Label(), target.Label())
	}

	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusPaid:
		o.PaymentStatus = PaymentPaid
		o.PaidAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
		if o.PaymentStatus == PaymentPaid {
			o.PaymentStatus = PaymentRefunded
		} else {
			o.PaymentStatus = PaymentCancelled
		}
	}
	return nil
}

// Cancel 取消订单
func (o *Order) Cancel(reason string, now time.Time) error {
	if !o.IsCancellable() {
		return ErrNotCancellable.WithMessagef("订单状态为%s，无法取消", o.Status.Label())
	}
	if err := o.TransitionTo(StatusCancelled, now); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// Ship 发货，记录物流信息
func (o *Order) Ship(trackingNumber, courier string, now time.Time) error {
	if err := o.TransitionTo(StatusShipped, now); err != nil {
		return err
	}
	o.TrackingNumber = trackingNumber
	o.Courier = courier
	return nil
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// ItemCount 商品总件数
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
