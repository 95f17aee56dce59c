package dto

// SignupRequest 注册
type SignupRequest struct {
	Email           string `json:"email" binding:"required,email,max=100" example:"buyer@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Name            string `json:"name" binding:"required,max=50" example:"홍길동"`
	Phone           string `json:"phone" binding:"omitempty,max=20" example:"010-1234-5678"`
	MarketingAgreed bool   `json:"marketingAgreed"`
}

// LoginRequest 登录
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"buyer@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RefreshRequest 刷新Token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest 登出，refreshToken可选，传入时一并作废
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SocialCallbackRequest 社交登录回调
type SocialCallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state"`
}
