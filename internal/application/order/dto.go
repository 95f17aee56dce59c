package order

import (
	"time"

	"github.com/xiebiao/mall/internal/domain/order"
)

// =========================================
// 应用层DTO
// =========================================

// ItemInput 下单商品
type ItemInput struct {
	ProductID uint
	Quantity  int
	Color     string
	Size      string
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID         uint // 从JWT中提取
	Items          []ItemInput
	Shipping       order.ShippingAddress
	PaymentMethod  string
	DiscountAmount int64
	UserCouponID   *uint // 使用优惠券时，折扣以优惠券计算结果为准
}

// CreateOrderResponse 下单结果
type CreateOrderResponse struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	TotalAmount int64  `json:"totalAmount"` // 实付金额
	Status      string `json:"status"`
}

// ItemDTO 订单明细
type ItemDTO struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
	Color        string `json:"color"`
	Size         string `json:"size"`
	Subtotal     int64  `json:"subtotal"`
}

// ShippingDTO 收货信息
type ShippingDTO struct {
	RecipientName   string `json:"recipientName"`
	Phone           string `json:"phone"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	AddressDetail   string `json:"addressDetail,omitempty"`
	DeliveryMessage string `json:"deliveryMessage,omitempty"`
}

// OrderDTO 订单详情
type OrderDTO struct {
	ID             uint        `json:"id"`
	UserID         uint        `json:"userId"`
	OrderNumber    string      `json:"orderNumber"`
	Status         string      `json:"status"`
	StatusLabel    string      `json:"statusLabel"`
	TotalAmount    int64       `json:"totalAmount"`
	DiscountAmount int64       `json:"discountAmount"`
	ShippingFee    int64       `json:"shippingFee"`
	FinalAmount    int64       `json:"finalAmount"`
	Shipping       ShippingDTO `json:"shipping"`
	PaymentMethod  string      `json:"paymentMethod"`
	PaymentStatus  string      `json:"paymentStatus"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Courier        string      `json:"courier,omitempty"`
	CancelReason   string      `json:"cancelReason,omitempty"`
	Items          []ItemDTO   `json:"items"`
	CreatedAt      time.Time   `json:"createdAt"`
	PaidAt         *time.Time  `json:"paidAt,omitempty"`
	ShippedAt      *time.Time  `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time  `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time  `json:"cancelledAt,omitempty"`
}

// ListOrdersResponse 订单列表
type ListOrdersResponse struct {
	Orders     []OrderDTO `json:"orders"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

func toOrderDTO(o *order.Order) OrderDTO {
	items := make([]ItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemDTO{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Price:        it.Price,
			Quantity:     it.Quantity,
			Color:        it.Color,
			Size:         it.Size,
			Subtotal:     it.Subtotal,
		}
	}
	return OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		StatusLabel:    o.Status.Label(),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		ShippingFee:    o.ShippingFee,
		FinalAmount:    o.FinalAmount,
		Shipping: ShippingDTO{
			RecipientName:   o.Shipping.RecipientName,
			Phone:           o.Shipping.Phone,
			PostalCode:      o.Shipping.PostalCode,
			Address:         o.Shipping.Address,
			AddressDetail:   o.Shipping.AddressDetail,
			DeliveryMessage: o.Shipping.DeliveryMessage,
		},
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  string(o.PaymentStatus),
		TrackingNumber: o.TrackingNumber,
		Courier:        o.Courier,
		CancelReason:   o.CancelReason,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
	}
}
