package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 格式：{"error": "提示信息", "code": "not_found"}
type ErrorBody struct {
	Error string `json:"error" example:"订单不存在"`
	Code  string `json:"code" example:"not_found"`
}

// SuccessBody 无返回数据的操作结果
type SuccessBody struct {
	Success bool `json:"success" example:"true"`
}

// Success 成功响应（HTTP 200，直接返回业务数据）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// OK 返回 {"success": true}
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessBody{Success: true})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := orderUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		// 生产环境不暴露内部细节
		if gin.Mode() == gin.ReleaseMode {
			message = apperrors.ErrInternal.Message
		}
	}

	c.JSON(appErr.Status, ErrorBody{
		Error: message,
		Code:  appErr.Code,
	})
}

// ErrorWithCode 自定义状态码、错误码和消息
func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorBody{
		Error: message,
		Code:  code,
	})
}

// Abort 输出错误并终止后续Handler（中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BindError 参数绑定/校验失败
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		ErrorWithCode(c, http.StatusBadRequest, apperrors.CodeValidation,
			"参数校验失败: "+fe.Field()+" "+fe.Tag())
		return
	}
	ErrorWithCode(c, http.StatusBadRequest, apperrors.CodeValidation, "参数格式错误: "+err.Error())
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
func NewPageData(items interface{}, total int64, page, limit int) *PageData {
	return &PageData{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages 向上取整计算总页数，没有数据时为1
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NormalizePage 规范化分页参数：page至少为1，limit限制在[1, max]，缺省为def
func NormalizePage(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit
}
