package dto

// CreateOrderItem 下单商品
type CreateOrderItem struct {
	ProductID uint   `json:"productId" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
	Color     string `json:"color" binding:"max=50" example:"블랙"`
	Size      string `json:"size" binding:"max=20" example:"M"`
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	RecipientName   string `json:"recipientName" binding:"required,max=50" example:"홍길동"`
	Phone           string `json:"phone" binding:"required,max=20" example:"010-1234-5678"`
	PostalCode      string `json:"postalCode" binding:"required,max=10" example:"06236"`
	Address         string `json:"address" binding:"required,max=200" example:"서울특별시 강남구 테헤란로 123"`
	AddressDetail   string `json:"addressDetail" binding:"max=200"`
	DeliveryMessage string `json:"deliveryMessage" binding:"max=200"`
}

// CreateOrderRequest 下单
// items为空时由用例返回bad_request
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" binding:"dive"`
	ShippingAddress ShippingAddress   `json:"shippingAddress" binding:"required"`
	PaymentMethod   string            `json:"paymentMethod" binding:"required,max=20" example:"card"`
	DiscountAmount  int64             `json:"discountAmount" example:"0"`
	UserCouponID    *uint             `json:"userCouponId"`
}

// CancelOrderRequest 取消订单
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=200" example:"단순 변심"`
}

// UpdateOrderStatusRequest 管理员变更订单状态
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required" example:"shipped"`
	TrackingNumber string `json:"trackingNumber" binding:"max=50"`
	Courier        string `json:"courier" binding:"max=50"`
	Reason         string `json:"reason" binding:"max=200"`
}

// ListOrdersQuery 订单列表查询参数
type ListOrdersQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status"`
}
