package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/user"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储，返回domain层接口
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 邮箱唯一性由UNIQUE索引保证，捕获1062错误转换为ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByProvider(ctx context.Context, provider, providerID string) (*user.User, error) {
	return r.first(ctx, "provider = ? AND provider_id = ?", provider, providerID)
}

// Update 更新全部字段
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := dbFrom(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新用户失败")
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Search 姓名、邮箱、手机号模糊匹配，query为空时返回全部用户
func (r *userRepository) Search(ctx context.Context, query string, offset, limit int) ([]*user.User, int64, error) {
	db := dbFrom(ctx, r.db).Model(&UserModel{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	var models []UserModel
	if err := pageQuery(db.Order("created_at DESC").Order("id DESC"), offset, limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户失败")
	}
	result := make([]*user.User, len(models))
	for i := range models {
		result[i] = toUserEntity(&models[i])
	}
	return result, total, nil
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var model UserModel
	err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:              u.ID,
		Email:           nullableString(u.Email),
		Password:        u.Password,
		Name:            u.Name,
		Phone:           u.Phone,
		MarketingAgreed: u.MarketingAgreed,
		IsActive:        u.IsActive,
		IsAdmin:         u.IsAdmin,
		Provider:        u.Provider,
		ProviderID:      nullableString(u.ProviderID),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:              m.ID,
		Email:           derefString(m.Email),
		Password:        m.Password,
		Name:            m.Name,
		Phone:           m.Phone,
		MarketingAgreed: m.MarketingAgreed,
		IsActive:        m.IsActive,
		IsAdmin:         m.IsAdmin,
		Provider:        m.Provider,
		ProviderID:      derefString(m.ProviderID),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
