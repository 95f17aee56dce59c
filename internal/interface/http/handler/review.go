package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/mall/internal/application/review"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// ReviewHandler 评价接口
type ReviewHandler struct {
	reviewUseCase *appreview.ReviewUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// List 商品评价列表
// @Summary      商品评价
// @Tags         评价
// @Produce      json
// @Param        id    path  int true  "商品ID"
// @Param        limit query int false "数量(最大50)" default(10)
// @Success      200 {object} appreview.ListResponse
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.OffsetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.reviewUseCase.List(c.Request.Context(), productID, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Eligibility 能否评价
// @Summary      评价资格
// @Description  需要有已送达且未评价的订单明细
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} appreview.EligibilityResponse
// @Router       /products/{id}/reviews/eligibility [get]
func (h *ReviewHandler) Eligibility(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.reviewUseCase.Eligibility(c.Request.Context(), middleware.MustGetUserID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 发表评价
// @Summary      发表评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评价"
// @Success      200 {object} appreview.ReviewDTO
// @Failure      400 {object} response.ErrorBody "未购买/未送达/已评价"
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.reviewUseCase.Create(c.Request.Context(), appreview.CreateRequest{
		UserID:      middleware.MustGetUserID(c),
		ProductID:   req.ProductID,
		OrderItemID: req.OrderItemID,
		Rating:      req.Rating,
		Content:     req.Content,
		Images:      req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 修改评价
// @Summary      修改评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "评价ID"
// @Param        request body dto.UpdateReviewRequest true "评价"
// @Success      200 {object} appreview.ReviewDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.reviewUseCase.Update(c.Request.Context(), appreview.UpdateRequest{
		UserID:   middleware.MustGetUserID(c),
		ReviewID: id,
		Rating:   req.Rating,
		Content:  req.Content,
		Images:   req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除评价
// @Summary      删除评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
