package handler

import (
	"github.com/gin-gonic/gin"

	appbanner "github.com/xiebiao/mall/internal/application/banner"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/pkg/response"
)

// BannerHandler 横幅接口
type BannerHandler struct {
	bannerUseCase *appbanner.BannerUseCase
}

// NewBannerHandler 创建横幅处理器
func NewBannerHandler(bannerUseCase *appbanner.BannerUseCase) *BannerHandler {
	return &BannerHandler{bannerUseCase: bannerUseCase}
}

// List 横幅列表
// @Summary      横幅列表
// @Description  按展示顺序升序，同序号新建的在前
// @Tags         横幅
// @Produce      json
// @Param        activeOnly query bool false "只返回展示中的横幅"
// @Success      200 {object} appbanner.ListResponse
// @Router       /banners [get]
func (h *BannerHandler) List(c *gin.Context) {
	var q dto.BannerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	h.list(c, q.ActiveOnly)
}

// Active 展示中的横幅
// @Summary      展示中的横幅
// @Tags         横幅
// @Produce      json
// @Success      200 {object} appbanner.ListResponse
// @Router       /banners/active [get]
func (h *BannerHandler) Active(c *gin.Context) {
	h.list(c, true)
}

func (h *BannerHandler) list(c *gin.Context, activeOnly bool) {
	result, err := h.bannerUseCase.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 横幅详情
// @Summary      横幅详情
// @Tags         横幅
// @Produce      json
// @Param        id path int true "横幅ID"
// @Success      200 {object} appbanner.BannerDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /banners/{id} [get]
func (h *BannerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.bannerUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建横幅
// @Summary      创建横幅
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBannerRequest true "横幅"
// @Success      200 {object} appbanner.BannerDTO
// @Failure      400 {object} response.ErrorBody "内容块类型不支持"
// @Router       /admin/banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var req dto.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.bannerUseCase.Create(c.Request.Context(), appbanner.CreateRequest{
		Title:         req.Title,
		ImageURL:      req.BannerImage,
		ContentBlocks: toBannerBlocks(req.ContentBlocks),
		IsActive:      req.IsActive,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 修改横幅
// @Summary      修改横幅
// @Description  只更新请求中出现的字段
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "横幅ID"
// @Param        request body dto.UpdateBannerRequest true "横幅"
// @Success      200 {object} appbanner.BannerDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/banners/{id} [put]
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.bannerUseCase.Update(c.Request.Context(), appbanner.UpdateRequest{
		ID:            id,
		Title:         req.Title,
		ImageURL:      req.BannerImage,
		ContentBlocks: toBannerBlocks(req.ContentBlocks),
		IsActive:      req.IsActive,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除横幅
// @Summary      删除横幅
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "横幅ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bannerUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// toBannerBlocks nil表示请求中没有contentBlocks字段
func toBannerBlocks(in []dto.BannerBlockRequest) []appbanner.ContentBlockDTO {
	if in == nil {
		return nil
	}
	out := make([]appbanner.ContentBlockDTO, len(in))
	for i, blk := range in {
		out[i] = appbanner.ContentBlockDTO{Type: blk.Type, Content: blk.Content}
	}
	return out
}
