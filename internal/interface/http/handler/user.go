package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// UserHandler 认证相关接口
// Handler只负责解析请求、调用用例、返回响应，业务规则在application/domain层
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	refreshUseCase  *appuser.RefreshTokenUseCase
	logoutUseCase   *appuser.LogoutUseCase
	profileUseCase  *appuser.GetProfileUseCase
	socialUseCase   *appuser.SocialLoginUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	refreshUseCase *appuser.RefreshTokenUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	profileUseCase *appuser.GetProfileUseCase,
	socialUseCase *appuser.SocialLoginUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		refreshUseCase:  refreshUseCase,
		logoutUseCase:   logoutUseCase,
		profileUseCase:  profileUseCase,
		socialUseCase:   socialUseCase,
	}
}

// Signup 注册
// @Summary      用户注册
// @Description  创建账号并直接返回Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "注册信息"
// @Success      200 {object} appuser.AuthResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      409 {object} response.ErrorBody "邮箱已被注册"
// @Failure      429 {object} middleware.RateLimitBody
// @Router       /auth/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Phone:           req.Phone,
		MarketingAgreed: req.MarketingAgreed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Login 登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} appuser.AuthResponse
// @Failure      401 {object} response.ErrorBody "邮箱或密码错误/账号已停用"
// @Failure      429 {object} middleware.RateLimitBody
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh 刷新Token
// @Summary      刷新Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} appuser.AuthResponse
// @Failure      401 {object} response.ErrorBody
// @Router       /auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 登出
// @Summary      登出
// @Description  当前Access Token（以及可选的Refresh Token）加入黑名单直到过期
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.LogoutRequest false "Refresh Token"
// @Success      200 {object} response.SuccessBody
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	err := h.logoutUseCase.Execute(c.Request.Context(), appuser.LogoutRequest{
		AccessToken:  middleware.BearerToken(c),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// Me 当前用户信息
// @Summary      当前用户信息
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} appuser.UserDTO
// @Failure      401 {object} response.ErrorBody
// @Router       /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	result, err := h.profileUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SocialURL 社交登录授权地址
// @Summary      社交登录授权地址
// @Tags         认证
// @Produce      json
// @Param        provider path string true "google | naver"
// @Success      200 {object} appuser.SocialURLResponse
// @Failure      400 {object} response.ErrorBody "不支持的登录方式"
// @Router       /auth/social/{provider}/url [get]
func (h *UserHandler) SocialURL(c *gin.Context) {
	result, err := h.socialUseCase.AuthURL(c.Param("provider"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SocialCallback 社交登录回调
// @Summary      社交登录回调
// @Description  用授权码换取第三方用户信息，找到或创建账号后签发Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        provider path string true "google | naver"
// @Param        request body dto.SocialCallbackRequest true "授权码"
// @Success      200 {object} appuser.AuthResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      401 {object} response.ErrorBody
// @Router       /auth/social/{provider}/callback [post]
func (h *UserHandler) SocialCallback(c *gin.Context) {
	var req dto.SocialCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.socialUseCase.Callback(c.Request.Context(), c.Param("provider"), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
