package user

import (
	"time"

	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/pkg/jwt"
)

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string
	Password        string
	Name            string
	Phone           string
	MarketingAgreed bool
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LogoutRequest 登出请求，RefreshToken可选
type LogoutRequest struct {
	AccessToken  string
	RefreshToken string
}

// UserDTO 用户信息（不包含密码）
type UserDTO struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	MarketingAgreed bool      `json:"marketingAgreed"`
	IsAdmin         bool      `json:"isAdmin"`
	Provider        string    `json:"provider"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AuthResponse 登录/注册/刷新结果
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresIn    int64   `json:"expiresIn"` // Access Token有效期（秒）
	User         UserDTO `json:"user"`
}

// SocialURLResponse 第三方授权页地址
type SocialURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Phone:           u.Phone,
		MarketingAgreed: u.MarketingAgreed,
		IsAdmin:         u.IsAdmin,
		Provider:        u.Provider,
		CreatedAt:       u.CreatedAt,
	}
}

func newAuthResponse(pair *jwt.TokenPair, u *user.User) *AuthResponse {
	return &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         toUserDTO(u),
	}
}
