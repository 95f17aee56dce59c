package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// Service 用户领域服务
type Service interface {
	// Register 本地账号注册
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Authenticate 邮箱密码登录，账号必须处于启用状态
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// FindOrCreateSocial 社交登录：先按(provider, provider_id)查找，再按邮箱关联，都没有则创建
	FindOrCreateSocial(ctx context.Context, profile SocialProfile) (*User, error)

	// EnsureAdmin 创建或提升管理员账号（cmd/seed使用）
	EnsureAdmin(ctx context.Context, email, password, name string) (*User, error)

	// HashPassword bcrypt加密
	HashPassword(password string) (string, error)
}

// RegisterParams 注册参数
type RegisterParams struct {
	Email           string
	Password        string
	Name            string
	Phone           string
	MarketingAgreed bool
}

// SocialProfile 第三方平台返回的用户信息
type SocialProfile struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
}

// DefaultBcryptCost 密码加密成本（每+1耗时翻倍）
const DefaultBcryptCost = 12

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: DefaultBcryptCost}
}

// NewServiceWithCost 指定bcrypt成本（测试使用bcrypt.MinCost加速）
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Register 用户注册
// 邮箱唯一性由数据库UNIQUE索引保证，Repository把重复错误转换为ErrEmailDuplicate
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	email := normalizeEmail(params.Email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.Validation("姓名不能为空")
	}

	hashed, err := s.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	u := NewUser(email, hashed, name, strings.TrimSpace(params.Phone), params.MarketingAgreed)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate 登录校验
// 邮箱不存在与密码错误返回同一个错误，避免枚举账号
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	return u, nil
}

func (s *service) FindOrCreateSocial(ctx context.Context, profile SocialProfile) (*User, error) {
	if profile.ProviderID == "" {
		return nil, apperrors.BadRequest("无法获取第三方账号信息")
	}

	u, err := s.repo.FindByProvider(ctx, profile.Provider, profile.ProviderID)
	if err == nil {
		return checkActive(u)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	email := normalizeEmail(profile.Email)
	if email != "" {
		u, err = s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			// 已有同邮箱账号，绑定社交账号
			u.Provider = profile.Provider
			u.ProviderID = profile.ProviderID
			if err := s.repo.Update(ctx, u); err != nil {
				return nil, err
			}
			return checkActive(u)
		case !errors.Is(err, ErrUserNotFound):
			return nil, err
		}
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = profile.Provider + "用户"
	}
	u = NewUser(email, "", name, "", false)
	u.Provider = profile.Provider
	u.ProviderID = profile.ProviderID
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if u != nil {
		u.IsAdmin = true
		u.IsActive = true
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u = NewUser(email, hashed, name, "", false)
	u.IsAdmin = true
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func checkActive(u *User) (*User, error) {
	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword bcrypt只使用前72字节
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrWeakPassword
	}
	return nil
}
