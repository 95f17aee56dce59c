package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/mall/internal/application/product"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/pkg/response"
)

// ProductHandler 商品接口（公开查询 + 管理员维护）
type ProductHandler struct {
	listUseCase   *appproduct.ListProductsUseCase
	getUseCase    *appproduct.GetProductUseCase
	manageUseCase *appproduct.ManageProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	listUseCase *appproduct.ListProductsUseCase,
	getUseCase *appproduct.GetProductUseCase,
	manageUseCase *appproduct.ManageProductUseCase,
) *ProductHandler {
	return &ProductHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		manageUseCase: manageUseCase,
	}
}

// List 商品列表
// @Summary      商品列表
// @Description  只返回上架商品，按创建时间倒序，结果缓存在Redis
// @Tags         商品
// @Produce      json
// @Param        page     query int    false "页码" default(1)
// @Param        limit    query int    false "每页数量(1-100)" default(20)
// @Param        category query string false "分类"
// @Param        search   query string false "名称关键字"
// @Success      200 {object} appproduct.ListProductsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.listUseCase.Execute(c.Request.Context(), appproduct.ListProductsRequest{
		Page:     q.Page,
		Limit:    q.Limit,
		Category: q.Category,
		Search:   q.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 商品详情
// @Summary      商品详情
// @Description  每次访问浏览量+1
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} appproduct.ProductDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建商品
// @Summary      创建商品
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} appproduct.ProductDTO
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), appproduct.CreateProductRequest{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Categories:    req.Categories,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsNew:         req.IsNew,
		IsBest:        req.IsBest,
		IsActive:      isActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 部分更新商品
// @Summary      更新商品
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                      true "商品ID"
// @Param        request body dto.UpdateProductRequest true "需要修改的字段"
// @Success      200 {object} appproduct.ProductDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), appproduct.UpdateProductRequest{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Categories:    req.Categories,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsNew:         req.IsNew,
		IsBest:        req.IsBest,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除商品（软删除）
// @Summary      删除商品
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
