package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/user"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/jwt"
)

// TokenBlacklist 已注销Token的存储（Redis实现见persistence/redis.SessionStore）
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// LoginUseCase 用户登录用例
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	log         *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, log *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateTokenPair(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	uc.log.Info("用户登录", zap.Uint("user_id", u.ID))
	return newAuthResponse(pair, u), nil
}

// RefreshTokenUseCase 用Refresh Token换新的Token对
// 用户信息从数据库重新读取，停用或提权后立即生效；
// 旧的Refresh Token换取成功后即加入黑名单（轮换）
type RefreshTokenUseCase struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
	now        func() time.Time
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(userRepo user.Repository, jwtManager *jwt.Manager, blacklist TokenBlacklist) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.blacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrInactiveUser
	}

	pair, err := uc.jwtManager.GenerateTokenPair(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, err
	}
	if ttl := claims.ExpiresAt.Time.Sub(uc.now()); ttl > 0 {
		if err := uc.blacklist.Revoke(ctx, refreshToken, ttl); err != nil {
			return nil, err
		}
	}
	return newAuthResponse(pair, u), nil
}

// LogoutUseCase 用户登出用例
// Token写入黑名单直到其自然过期
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
	log        *zap.Logger
	now        func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, blacklist TokenBlacklist, log *zap.Logger) *LogoutUseCase {
	return &LogoutUseCase{
		jwtManager: jwtManager,
		blacklist:  blacklist,
		log:        log,
		now:        time.Now,
	}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	if err := uc.revoke(ctx, req.AccessToken); err != nil {
		return err
	}
	if req.RefreshToken != "" {
		if err := uc.revoke(ctx, req.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (uc *LogoutUseCase) revoke(ctx context.Context, token string) error {
	claims, err := uc.jwtManager.ParseToken(token)
	if err != nil {
		// 已失效的Token无需加入黑名单
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(uc.now())
	if err := uc.blacklist.Revoke(ctx, token, ttl); err != nil {
		return err
	}
	uc.log.Info("Token已注销", zap.Uint("user_id", claims.UserID), zap.String("type", string(claims.Type)))
	return nil
}

// GetProfileUseCase 当前用户信息
type GetProfileUseCase struct {
	userRepo user.Repository
}

// NewGetProfileUseCase 创建用例
func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute 查询用户
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserDTO, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}
