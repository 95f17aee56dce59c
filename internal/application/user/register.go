package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/pkg/jwt"
)

// RegisterUseCase 用户注册用例
// 注册成功后直接签发Token，前端无需再调用登录
type RegisterUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	log         *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager, log *zap.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Phone:           req.Phone,
		MarketingAgreed: req.MarketingAgreed,
	})
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateTokenPair(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	uc.log.Info("用户注册", zap.Uint("user_id", u.ID))
	return newAuthResponse(pair, u), nil
}
