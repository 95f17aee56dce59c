package user

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/pkg/response"
)

// AdminUserDTO 管理员看到的用户信息
type AdminUserDTO struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	IsActive        bool      `json:"isActive"`
	MarketingAgreed bool      `json:"marketingAgreed"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SearchUsersResponse 用户搜索结果
type SearchUsersResponse struct {
	Users []AdminUserDTO `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// AdminUserUseCase 管理员查询用户
type AdminUserUseCase struct {
	repo user.Repository
}

// NewAdminUserUseCase 创建用例
func NewAdminUserUseCase(repo user.Repository) *AdminUserUseCase {
	return &AdminUserUseCase{repo: repo}
}

// Search 按姓名/邮箱/手机号搜索，limit默认20，最大100
func (uc *AdminUserUseCase) Search(ctx context.Context, query string, page, limit int) (*SearchUsersResponse, error) {
	page, limit = response.NormalizePage(page, limit, 20, 100)
	users, total, err := uc.repo.Search(ctx, strings.TrimSpace(query), (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AdminUserDTO, len(users))
	for i, u := range users {
		out[i] = toAdminUserDTO(u)
	}
	return &SearchUsersResponse{Users: out, Total: total, Page: page, Limit: limit}, nil
}

// Get 用户详情，不存在时返回ErrUserNotFound
func (uc *AdminUserUseCase) Get(ctx context.Context, id uint) (*AdminUserDTO, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toAdminUserDTO(u)
	return &dto, nil
}

func toAdminUserDTO(u *user.User) AdminUserDTO {
	return AdminUserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Phone:           u.Phone,
		IsActive:        u.IsActive,
		MarketingAgreed: u.MarketingAgreed,
		CreatedAt:       u.CreatedAt,
	}
}
