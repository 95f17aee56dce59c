package handler

import (
	"github.com/gin-gonic/gin"

	appcoupon "github.com/xiebiao/mall/internal/application/coupon"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// CouponHandler 优惠券接口
type CouponHandler struct {
	adminUseCase *appcoupon.AdminCouponUseCase
	userUseCase  *appcoupon.UserCouponUseCase
}

// NewCouponHandler 创建优惠券处理器
func NewCouponHandler(adminUseCase *appcoupon.AdminCouponUseCase, userUseCase *appcoupon.UserCouponUseCase) *CouponHandler {
	return &CouponHandler{
		adminUseCase: adminUseCase,
		userUseCase:  userUseCase,
	}
}

func toCouponInput(req dto.CouponRequest) appcoupon.CouponInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return appcoupon.CouponInput{
		Code:              req.Code,
		Name:              req.Name,
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		UsageLimit:        req.UsageLimit,
		IsActive:          isActive,
	}
}

// Create 创建优惠券
// @Summary      创建优惠券
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CouponRequest true "优惠券"
// @Success      200 {object} appcoupon.CouponDTO
// @Failure      409 {object} response.ErrorBody "券码已存在"
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.adminUseCase.Create(c.Request.Context(), toCouponInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新优惠券
// @Summary      更新优惠券
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "优惠券ID"
// @Param        request body dto.CouponRequest true "优惠券"
// @Success      200 {object} appcoupon.CouponDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.adminUseCase.Update(c.Request.Context(), id, toCouponInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除优惠券
// @Summary      删除优惠券
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "优惠券ID"
// @Success      200 {object} response.SuccessBody
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// List 优惠券列表
// @Summary      优惠券列表
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "页码" default(1)
// @Param        limit query int false "每页数量" default(20)
// @Success      200 {object} appcoupon.ListCouponsResponse
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.adminUseCase.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Issue 发放给指定用户
// @Summary      发放优惠券
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "优惠券ID"
// @Param        request body dto.IssueCouponRequest true "用户"
// @Success      200 {object} appcoupon.UserCouponDTO
// @Failure      400 {object} response.ErrorBody "已失效/已发放/超出发放上限"
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/coupons/{id}/issue [post]
func (h *CouponHandler) Issue(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.IssueCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.adminUseCase.Issue(c.Request.Context(), id, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Mine 我的优惠券
// @Summary      我的优惠券
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} appcoupon.UserCouponDTO
// @Router       /coupons [get]
func (h *CouponHandler) Mine(c *gin.Context) {
	result, err := h.userUseCase.List(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Claim 券码领取
// @Summary      领取优惠券
// @Tags         优惠券
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ClaimCouponRequest true "券码"
// @Success      200 {object} appcoupon.UserCouponDTO
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "券码不存在"
// @Router       /coupons/claim [post]
func (h *CouponHandler) Claim(c *gin.Context) {
	var req dto.ClaimCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.userUseCase.Claim(c.Request.Context(), middleware.MustGetUserID(c), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
