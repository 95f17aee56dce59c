package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/oauth"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/jwt"
)

// SocialLoginUseCase Google/Naver授权码登录
// state由前端保存并在回调时自行比对
type SocialLoginUseCase struct {
	providers   *oauth.Registry
	userService user.Service
	jwtManager  *jwt.Manager
	log         *zap.Logger
}

// NewSocialLoginUseCase 创建社交登录用例
func NewSocialLoginUseCase(providers *oauth.Registry, userService user.Service, jwtManager *jwt.Manager, log *zap.Logger) *SocialLoginUseCase {
	return &SocialLoginUseCase{
		providers:   providers,
		userService: userService,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// AuthURL 生成授权页地址
func (uc *SocialLoginUseCase) AuthURL(provider string) (*SocialURLResponse, error) {
	p, err := uc.providers.Get(provider)
	if err != nil {
		return nil, err
	}
	state := uuid.NewString()
	return &SocialURLResponse{URL: p.AuthCodeURL(state), State: state}, nil
}

// Callback 用授权码换取用户信息并登录，首次登录自动创建账号
func (uc *SocialLoginUseCase) Callback(ctx context.Context, provider, code string) (*AuthResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Validation("授权码不能为空")
	}
	p, err := uc.providers.Get(provider)
	if err != nil {
		return nil, err
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		uc.log.Warn("社交登录失败", zap.String("provider", provider), zap.Error(err))
		return nil, err
	}

	u, err := uc.userService.FindOrCreateSocial(ctx, profile)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateTokenPair(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	uc.log.Info("社交登录", zap.String("provider", provider), zap.Uint("user_id", u.ID))
	return newAuthResponse(pair, u), nil
}

// SeedAdminUseCase 创建或提升管理员账号
type SeedAdminUseCase struct {
	userService user.Service
	log         *zap.Logger
}

// NewSeedAdminUseCase 创建用例
func NewSeedAdminUseCase(userService user.Service, log *zap.Logger) *SeedAdminUseCase {
	return &SeedAdminUseCase{userService: userService, log: log}
}

// Execute 执行初始化
func (uc *SeedAdminUseCase) Execute(ctx context.Context, email, password, name string) (*UserDTO, error) {
	if strings.TrimSpace(name) == "" {
		name = "管理员"
	}
	u, err := uc.userService.EnsureAdmin(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	uc.log.Info("管理员账号已就绪", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	dto := toUserDTO(u)
	return &dto, nil
}
