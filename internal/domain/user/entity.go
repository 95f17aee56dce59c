package user

import (
	"time"
)

// 登录方式
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderNaver  = "naver"
)

// User 用户实体（聚合根）
// 密码只保存bcrypt哈希；社交登录用户没有密码，通过(Provider, ProviderID)识别
type User struct {
	ID              uint
	Email           string
	Password        string // bcrypt哈希值
	Name            string
	Phone           string
	MarketingAgreed bool
	IsActive        bool
	IsAdmin         bool
	Provider        string
	ProviderID      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建本地注册用户（工厂方法）
func NewUser(email, hashedPassword, name, phone string, marketingAgreed bool) *User {
	now := time.Now()
	return &User{
		Email:           email,
		Password:        hashedPassword,
		Name:            name,
		Phone:           phone,
		MarketingAgreed: marketingAgreed,
		IsActive:        true,
		Provider:        ProviderLocal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasPassword 社交登录用户没有本地密码
func (u *User) HasPassword() bool {
	return u.Password != ""
}
