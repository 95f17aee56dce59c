//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	appcart "github.com/xiebiao/mall/internal/application/cart"
	appcoupon "github.com/xiebiao/mall/internal/application/coupon"
	appfavorite "github.com/xiebiao/mall/internal/application/favorite"
	appinquiry "github.com/xiebiao/mall/internal/application/inquiry"
	appnotification "github.com/xiebiao/mall/internal/application/notification"
	apporder "github.com/xiebiao/mall/internal/application/order"
	appreview "github.com/xiebiao/mall/internal/application/review"
	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/oauth"
	"github.com/xiebiao/mall/internal/infrastructure/persistence/mysql"
	rediscache "github.com/xiebiao/mall/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/mall/internal/interface/http/handler"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、对象存储、OAuth
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	rediscache.NewClient,
	rediscache.NewCache,
	rediscache.NewSessionStore,
	rediscache.NewRateLimitStore,
	provideObjectStore,
	providePublisher,
	oauth.NewRegistry,
	wire.Bind(new(application.Cache), new(*rediscache.Cache)),
	wire.Bind(new(appuser.TokenBlacklist), new(*rediscache.SessionStore)),
	wire.Bind(new(middleware.TokenChecker), new(*rediscache.SessionStore)),
	wire.Bind(new(middleware.LimitStore), new(*rediscache.RateLimitStore)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewOrderRepository,
	mysql.NewCartRepository,
	mysql.NewCouponRepository,
	mysql.NewFavoriteRepository,
	mysql.NewReviewRepository,
	mysql.NewNotificationRepository,
	mysql.NewBannerRepository,
	mysql.NewInquiryRepository,
	mysql.NewTxManager,
	wire.Bind(new(application.Transactor), new(*mysql.TxManager)),
)

var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewSocialLoginUseCase,
	appuser.NewAdminUserUseCase,
	provideListProductsUseCase,
	provideGetProductUseCase,
	provideManageProductUseCase,
	appcart.NewCartUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	appcoupon.NewAdminCouponUseCase,
	appcoupon.NewUserCouponUseCase,
	appfavorite.NewFavoriteUseCase,
	appreview.NewReviewUseCase,
	appnotification.NewNotificationUseCase,
	appnotification.NewOrderEventHandler,
	provideBannerUseCase,
	appinquiry.NewInquiryUseCase,
	provideUploadUseCase,
)

var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	middleware.NewRateLimiter,
)

var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewAdminOrderHandler,
	handler.NewAdminUserHandler,
	handler.NewCouponHandler,
	handler.NewFavoriteHandler,
	handler.NewReviewHandler,
	handler.NewNotificationHandler,
	handler.NewBannerHandler,
	handler.NewInquiryHandler,
	provideUploadHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 组装整个应用，cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		router.New,
		provideHTTPServer,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
