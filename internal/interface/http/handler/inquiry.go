package handler

import (
	"github.com/gin-gonic/gin"

	appinquiry "github.com/xiebiao/mall/internal/application/inquiry"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// InquiryHandler 1:1咨询接口
type InquiryHandler struct {
	inquiryUseCase *appinquiry.InquiryUseCase
}

// NewInquiryHandler 创建咨询处理器
func NewInquiryHandler(inquiryUseCase *appinquiry.InquiryUseCase) *InquiryHandler {
	return &InquiryHandler{inquiryUseCase: inquiryUseCase}
}

// Create 提交咨询
// @Summary      提交咨询
// @Description  type: product, order, delivery, return, general
// @Tags         咨询
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateInquiryRequest true "咨询"
// @Success      200 {object} appinquiry.InquiryDTO
// @Failure      400 {object} response.ErrorBody "咨询类型无效"
// @Router       /inquiries [post]
func (h *InquiryHandler) Create(c *gin.Context) {
	var req dto.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.inquiryUseCase.Create(c.Request.Context(), appinquiry.CreateRequest{
		UserID:    middleware.MustGetUserID(c),
		ProductID: req.ProductID,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Mine 我的咨询
// @Summary      我的咨询
// @Tags         咨询
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "数量" default(20)
// @Param        offset query int false "偏移" default(0)
// @Success      200 {object} appinquiry.ListResponse
// @Router       /inquiries [get]
func (h *InquiryHandler) Mine(c *gin.Context) {
	var q dto.OffsetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.inquiryUseCase.ListMine(c.Request.Context(), middleware.MustGetUserID(c), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 咨询详情
// @Summary      咨询详情
// @Tags         咨询
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "咨询ID"
// @Success      200 {object} appinquiry.InquiryDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /inquiries/{id} [get]
func (h *InquiryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.inquiryUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除咨询
// @Summary      删除咨询
// @Description  已答复的咨询不能删除
// @Tags         咨询
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "咨询ID"
// @Success      200 {object} response.SuccessBody
// @Failure      400 {object} response.ErrorBody "已答复"
// @Failure      404 {object} response.ErrorBody
// @Router       /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inquiryUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// AdminList 全部咨询
// @Summary      咨询列表（管理员）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        isAnswered query bool   false "是否已答复"
// @Param        type       query string false "咨询类型"
// @Param        limit      query int    false "数量" default(20)
// @Param        offset     query int    false "偏移" default(0)
// @Success      200 {object} appinquiry.ListResponse
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) AdminList(c *gin.Context) {
	var q dto.AdminInquiryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.inquiryUseCase.AdminList(c.Request.Context(), appinquiry.AdminListRequest{
		IsAnswered: q.IsAnswered,
		Type:       q.Type,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Answer 答复咨询
// @Summary      答复咨询
// @Description  重复答复会覆盖之前的内容，并通知提问用户
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                      true "咨询ID"
// @Param        request body dto.AnswerInquiryRequest true "答复"
// @Success      200 {object} dto.AnswerInquiryResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/inquiries/{id}/answer [post]
func (h *InquiryHandler) Answer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AnswerInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.inquiryUseCase.Answer(c.Request.Context(), middleware.MustGetUserID(c), id, req.Answer); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AnswerInquiryResponse{Success: true, Message: "答复已登记"})
}
