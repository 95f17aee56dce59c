package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/mall/internal/application/cart"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// CartHandler 购物车接口
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// Get 购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} appcart.CartDTO
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	result, err := h.cartUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Add 加入购物车，同一商品+颜色+尺码合并数量
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品"
// @Success      200 {object} response.SuccessBody
// @Failure      400 {object} response.ErrorBody "商品已下架"
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	err := h.cartUseCase.Add(c.Request.Context(), appcart.AddItemRequest{
		UserID:    middleware.MustGetUserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Update 修改数量
// @Summary      修改购物车数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "购物车条目ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /cart/{id} [put]
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.cartUseCase.UpdateQuantity(c.Request.Context(), middleware.MustGetUserID(c), id, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Remove 删除条目
// @Summary      删除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "购物车条目ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cartUseCase.Remove(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessBody
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartUseCase.Clear(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
