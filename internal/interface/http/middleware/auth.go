package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/jwt"
	"github.com/xiebiao/mall/pkg/response"
)

// Context中保存的用户信息key
const (
	ctxUserID  = "user_id"
	ctxEmail   = "email"
	ctxIsAdmin = "is_admin"
)

// TokenChecker 黑名单查询，由redis.SessionStore实现
type TokenChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 检查黑名单（已登出的Token）
// 3. 校验签名、过期时间和Token类型（只接受access）
// 4. 将用户信息写入gin.Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenChecker
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/orders")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			response.Abort(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选登录：有合法Token时注入用户信息，否则按匿名用户继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if BearerToken(c) != "" {
			if claims, err := m.authenticate(c); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员，需放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		if !IsAdmin(c) {
			response.Abort(c, apperrors.ErrForbidden.WithMessage("需要管理员权限"))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperrors.ErrUnauthorized
	}
	token := BearerToken(c)
	if token == "" {
		return nil, apperrors.ErrInvalidToken.WithMessage("Token格式错误")
	}

	revoked, err := m.blacklist.IsRevoked(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	return m.jwtManager.ParseAccessToken(token)
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxIsAdmin, claims.IsAdmin)
}

// BearerToken 提取 Authorization: Bearer <token>，格式不对时返回空串
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID 当前登录用户ID，未登录时为0
func GetUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxIsAdmin)
}

// MustGetUserID 用于已经通过RequireAuth的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
