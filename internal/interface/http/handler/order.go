package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/mall/internal/application/order"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// OrderHandler 用户订单接口
type OrderHandler struct {
	createUseCase *apporder.CreateOrderUseCase
	cancelUseCase *apporder.CancelOrderUseCase
	listUseCase   *apporder.ListOrdersUseCase
	getUseCase    *apporder.GetOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	cancelUseCase *apporder.CancelOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	getUseCase *apporder.GetOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase: createUseCase,
		cancelUseCase: cancelUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
	}
}

// CreateOrder 下单
// @Summary      创建订单
// @Description  校验全部商品后在同一事务中扣减库存并创建订单，任一商品库存不足时不修改任何数据
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      200 {object} apporder.CreateOrderResponse
// @Failure      400 {object} response.ErrorBody "商品为空/库存不足/商品已下架/优惠券不可用"
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]apporder.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		}
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: middleware.MustGetUserID(c),
		Items:  items,
		Shipping: order.ShippingAddress{
			RecipientName:   req.ShippingAddress.RecipientName,
			Phone:           req.ShippingAddress.Phone,
			PostalCode:      req.ShippingAddress.PostalCode,
			Address:         req.ShippingAddress.Address,
			AddressDetail:   req.ShippingAddress.AddressDetail,
			DeliveryMessage: req.ShippingAddress.DeliveryMessage,
		},
		PaymentMethod:  req.PaymentMethod,
		DiscountAmount: req.DiscountAmount,
		UserCouponID:   req.UserCouponID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOrders 我的订单
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "页码" default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Param        status query string false "订单状态"
// @Success      200 {object} apporder.ListOrdersResponse
// @Failure      400 {object} response.ErrorBody "无效的订单状态"
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID: middleware.MustGetUserID(c),
		Page:   q.Page,
		Limit:  q.Limit,
		Status: q.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} apporder.OrderDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  待付款/已付款/备货中的订单可取消，库存按明细归还
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true  "订单ID"
// @Param        request body dto.CancelOrderRequest false "取消原因"
// @Success      200 {object} response.SuccessBody
// @Failure      400 {object} response.ErrorBody "当前状态无法取消"
// @Failure      404 {object} response.ErrorBody
// @Router       /orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	err := h.cancelUseCase.Execute(c.Request.Context(), apporder.CancelOrderRequest{
		UserID:  middleware.MustGetUserID(c),
		OrderID: id,
		Reason:  req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// AdminOrderHandler 管理员订单接口
type AdminOrderHandler struct {
	listUseCase   *apporder.ListOrdersUseCase
	getUseCase    *apporder.GetOrderUseCase
	statusUseCase *apporder.UpdateOrderStatusUseCase
}

// NewAdminOrderHandler 创建管理员订单处理器
func NewAdminOrderHandler(
	listUseCase *apporder.ListOrdersUseCase,
	getUseCase *apporder.GetOrderUseCase,
	statusUseCase *apporder.UpdateOrderStatusUseCase,
) *AdminOrderHandler {
	return &AdminOrderHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		statusUseCase: statusUseCase,
	}
}

// List 全部订单
// @Summary      订单列表（管理员）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页数量"
// @Param        status query string false "订单状态"
// @Success      200 {object} apporder.ListOrdersResponse
// @Failure      403 {object} response.ErrorBody
// @Router       /admin/orders [get]
func (h *AdminOrderHandler) List(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.listUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		Page:   q.Page,
		Limit:  q.Limit,
		Status: q.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 订单详情（管理员）
// @Summary      订单详情（管理员）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} apporder.OrderDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/orders/{id} [get]
func (h *AdminOrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getUseCase.ExecuteAdmin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 变更订单状态
// @Summary      变更订单状态
// @Description  按订单生命周期流转；shipped记录运单号，cancelled归还库存
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} apporder.OrderDTO
// @Failure      400 {object} response.ErrorBody "不允许的状态变更"
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody "订单状态已被其他请求修改"
// @Router       /admin/orders/{id}/status [put]
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.statusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID:        id,
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Courier:        req.Courier,
		Reason:         req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
