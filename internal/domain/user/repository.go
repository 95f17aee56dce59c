package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户，邮箱重复时返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在时返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByProvider 按社交账号查找，不存在时返回ErrUserNotFound
	FindByProvider(ctx context.Context, provider, providerID string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Search 管理员查询，query匹配姓名/邮箱/手机号，按注册时间倒序
	Search(ctx context.Context, query string, offset, limit int) ([]*User, int64, error)
}
