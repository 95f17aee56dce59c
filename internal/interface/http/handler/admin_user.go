package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/pkg/response"
)

// AdminUserHandler 管理员用户查询
type AdminUserHandler struct {
	adminUseCase *appuser.AdminUserUseCase
}

// NewAdminUserHandler 创建处理器
func NewAdminUserHandler(adminUseCase *appuser.AdminUserUseCase) *AdminUserHandler {
	return &AdminUserHandler{adminUseCase: adminUseCase}
}

// Search 用户搜索
// @Summary      用户搜索（管理员）
// @Description  姓名、邮箱、手机号模糊匹配，按注册时间倒序
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        query query string false "关键词"
// @Param        page  query int    false "页码" default(1)
// @Param        limit query int    false "每页数量" default(20)
// @Success      200 {object} appuser.SearchUsersResponse
// @Failure      403 {object} response.ErrorBody
// @Router       /admin/users [get]
func (h *AdminUserHandler) Search(c *gin.Context) {
	var q dto.AdminUserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.adminUseCase.Search(c.Request.Context(), q.Query, q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 用户详情
// @Summary      用户详情（管理员）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} appuser.AdminUserDTO
// @Failure      404 {object} response.ErrorBody
// @Router       /admin/users/{id} [get]
func (h *AdminUserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.adminUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
