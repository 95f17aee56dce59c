package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/mall/internal/application/notification"
	"github.com/xiebiao/mall/internal/interface/http/dto"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/response"
)

// NotificationHandler 通知接口
type NotificationHandler struct {
	notificationUseCase *appnotification.NotificationUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notificationUseCase *appnotification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

// List 我的通知
// @Summary      通知列表
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        limit      query int  false "数量(最大100)" default(20)
// @Param        offset     query int  false "偏移"
// @Param        unreadOnly query bool false "只看未读"
// @Success      200 {object} appnotification.ListResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var q dto.NotificationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.notificationUseCase.List(c.Request.Context(), appnotification.ListRequest{
		UserID:     middleware.MustGetUserID(c),
		Limit:      q.Limit,
		Offset:     q.Offset,
		UnreadOnly: q.UnreadOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MarkRead 标记已读
// @Summary      标记已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationUseCase.MarkRead(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

// MarkAllRead 全部已读
// @Summary      全部标记已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.MarkAllReadResponse
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationUseCase.MarkAllRead(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MarkAllReadResponse{Success: true, Updated: updated})
}

// Delete 删除通知
// @Summary      删除通知
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.SuccessBody
// @Failure      404 {object} response.ErrorBody
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
