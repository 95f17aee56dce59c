package user

import (
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound       = apperrors.NotFound("用户不存在")
	ErrEmailDuplicate     = apperrors.Conflict("邮箱已被注册")
	ErrInvalidCredentials = apperrors.Unauthorized("邮箱或密码错误")
	ErrInactiveUser       = apperrors.Unauthorized("账号已停用")
	ErrWeakPassword       = apperrors.Validation("密码长度应为8-72个字符")
	ErrInvalidEmail       = apperrors.Validation("邮箱格式不正确")
)
