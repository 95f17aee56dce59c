package handler

import (
	"github.com/gin-gonic/gin"

	appfavorite "github.com/xiebiao/mall/internal/application/favorite"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// FavoriteHandler 收藏接口
type FavoriteHandler struct {
	favoriteUseCase *appfavorite.FavoriteUseCase
}

// NewFavoriteHandler 创建收藏处理器
func NewFavoriteHandler(favoriteUseCase *appfavorite.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{favoriteUseCase: favoriteUseCase}
}

// List 我的收藏
// @Summary      收藏列表
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "数量(最大50)" default(20)
// @Param        offset query int false "偏移"
// @Success      200 {object} appfavorite.ListResponse
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	var q dto.OffsetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.favoriteUseCase.List(c.Request.Context(), middleware.MustGetUserID(c), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Status 收藏状态
// @Summary      收藏状态
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        productId path int true "商品ID"
// @Success      200 {object} appfavorite.StatusResponse
// @Router       /favorites/{productId} [get]
func (h *FavoriteHandler) Status(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	result, err := h.favoriteUseCase.Status(c.Request.Context(), middleware.MustGetUserID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Toggle 切换收藏
// @Summary      切换收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        productId path int true "商品ID"
// @Success      200 {object} appfavorite.StatusResponse
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /favorites/{productId}/toggle [post]
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	result, err := h.favoriteUseCase.Toggle(c.Request.Context(), middleware.MustGetUserID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Add 收藏
// @Summary      收藏商品
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        productId path int true "商品ID"
// @Success      200 {object} response.SuccessBody
// @Failure      400 {object} response.ErrorBody "已收藏"
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /favorites/{productId} [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.favoriteUseCase.Add(c.Request.Context(), middleware.MustGetUserID(c), productID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Remove 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        productId path int true "商品ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody "未收藏"
// @Router       /favorites/{productId} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.favoriteUseCase.Remove(c.Request.Context(), middleware.MustGetUserID(c), productID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
