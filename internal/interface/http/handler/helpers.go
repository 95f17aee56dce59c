package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/response"
)

// pathID 解析路径中的正整数ID，失败时直接写400响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, http.StatusBadRequest, apperrors.CodeBadRequest, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON 请求体可以为空（含chunked编码时ContentLength为-1的情况），
// 有内容时按JSON绑定，失败时直接写400响应
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return false
	}
	return true
}
