package order

import (
	"context"

	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/pkg/response"
)

// ListOrdersUseCase 订单列表（用户或管理员）
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest UserID为0时查询所有用户（仅管理员接口使用）
type ListOrdersRequest struct {
	UserID uint
	Page   int
	Limit  int
	Status string
}

// Execute 分页查询，按创建时间倒序
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	status := order.Status(req.Status)
	if status != "" && !status.IsValid() {
		return nil, order.ErrInvalidStatus
	}

	page, limit := response.NormalizePage(req.Page, req.Limit, 10, 100)
	orders, total, err := uc.orderRepo.List(ctx, order.ListFilter{
		UserID: req.UserID,
		Status: status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return &ListOrdersResponse{
		Orders:     dtos,
		Total:      total,
		Page:       page,
		TotalPages: response.TotalPages(total, limit),
	}, nil
}

// GetOrderUseCase 订单详情
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 查询用户自己的订单，不属于该用户时返回ErrOrderNotFound
func (uc *GetOrderUseCase) Execute(ctx context.Context, userID, orderID uint) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(o)
	return &dto, nil
}

// ExecuteAdmin 管理员查询任意订单
func (uc *GetOrderUseCase) ExecuteAdmin(ctx context.Context, orderID uint) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(o)
	return &dto, nil
}
