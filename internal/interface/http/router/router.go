package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/interface/http/handler"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	User         *handler.UserHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	Coupon       *handler.CouponHandler
	Favorite     *handler.FavoriteHandler
	Review       *handler.ReviewHandler
	Notification *handler.NotificationHandler
	Banner       *handler.BannerHandler
	Inquiry      *handler.InquiryHandler
	Upload       *handler.UploadHandler
	Health       *handler.HealthHandler
}

// New 创建Gin引擎并注册全部路由
func New(
	cfg *config.Config,
	log *zap.Logger,
	h Handlers,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORSOrigins),
		limiter.Global(),
	)

	r.GET("/ping", h.Health.Ping)
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if !cfg.Server.IsRelease() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", limiter.Limit(middleware.LimitAuthSignup), h.User.Signup)
		authGroup.POST("/login", limiter.Limit(middleware.LimitAuthLogin), h.User.Login)
		authGroup.POST("/refresh", limiter.Limit(middleware.LimitAuthLogin), h.User.Refresh)
		authGroup.POST("/logout", requireAuth, h.User.Logout)
		authGroup.GET("/me", requireAuth, h.User.Me)
		authGroup.GET("/social/:provider/url", h.User.SocialURL)
		authGroup.POST("/social/:provider/callback", limiter.Limit(middleware.LimitAuthLogin), h.User.SocialCallback)
	}

	products := r.Group("/products")
	{
		products.GET("", limiter.Limit(middleware.LimitSearch), h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/reviews", h.Review.List)
		products.GET("/:id/reviews/eligibility", requireAuth, h.Review.Eligibility)
	}

	banners := r.Group("/banners")
	{
		banners.GET("", h.Banner.List)
		banners.GET("/active", h.Banner.Active)
		banners.GET("/:id", h.Banner.Get)
	}

	// 以下接口都需要登录
	authed := r.Group("")
	authed.Use(requireAuth, limiter.Limit(middleware.LimitAPIDefault))

	cart := authed.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("", h.Cart.Add)
		cart.DELETE("", h.Cart.Clear)
		cart.PUT("/:id", h.Cart.Update)
		cart.DELETE("/:id", h.Cart.Remove)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", limiter.Limit(middleware.LimitCreate), h.Order.CreateOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PUT("/:id/cancel", limiter.Limit(middleware.LimitPayment), h.Order.CancelOrder)
	}

	coupons := authed.Group("/coupons")
	{
		coupons.GET("", h.Coupon.Mine)
		coupons.POST("/claim", h.Coupon.Claim)
	}

	favorites := authed.Group("/favorites")
	{
		favorites.GET("", h.Favorite.List)
		favorites.GET("/:productId", h.Favorite.Status)
		favorites.POST("/:productId", h.Favorite.Add)
		favorites.DELETE("/:productId", h.Favorite.Remove)
		favorites.POST("/:productId/toggle", h.Favorite.Toggle)
	}

	reviews := authed.Group("/reviews")
	{
		reviews.POST("", limiter.Limit(middleware.LimitCreate), h.Review.Create)
		reviews.PUT("/:id", h.Review.Update)
		reviews.DELETE("/:id", h.Review.Delete)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}

	inquiries := authed.Group("/inquiries")
	{
		inquiries.POST("", limiter.Limit(middleware.LimitCreate), h.Inquiry.Create)
		inquiries.GET("", h.Inquiry.Mine)
		inquiries.GET("/:id", h.Inquiry.Get)
		inquiries.DELETE("/:id", h.Inquiry.Delete)
	}

	uploads := authed.Group("/uploads")
	uploads.Use(limiter.Limit(middleware.LimitUpload))
	{
		uploads.POST("/image", h.Upload.Image)
		uploads.POST("/video", h.Upload.Video)
	}

	admin := r.Group("/admin")
	admin.Use(requireAuth, auth.RequireAdmin())
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)

		admin.GET("/orders", h.AdminOrder.List)
		admin.GET("/orders/:id", h.AdminOrder.Get)
		admin.PUT("/orders/:id/status", h.AdminOrder.UpdateStatus)

		admin.GET("/coupons", h.Coupon.List)
		admin.POST("/coupons", h.Coupon.Create)
		admin.PUT("/coupons/:id", h.Coupon.Update)
		admin.DELETE("/coupons/:id", h.Coupon.Delete)
		admin.POST("/coupons/:id/issue", h.Coupon.Issue)

		admin.GET("/users", h.AdminUser.Search)
		admin.GET("/users/:id", h.AdminUser.Get)

		admin.POST("/banners", h.Banner.Create)
		admin.PUT("/banners/:id", h.Banner.Update)
		admin.DELETE("/banners/:id", h.Banner.Delete)

		admin.GET("/inquiries", h.Inquiry.AdminList)
		admin.POST("/inquiries/:id/answer", h.Inquiry.Answer)
	}

	return r
}
