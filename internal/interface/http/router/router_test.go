package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/xiebiao/mall/docs"
	"github.com/xiebiao/mall/internal/application/apptest"
	appbanner "github.com/xiebiao/mall/internal/application/banner"
	appcart "github.com/xiebiao/mall/internal/application/cart"
	appcoupon "github.com/xiebiao/mall/internal/application/coupon"
	appfavorite "github.com/xiebiao/mall/internal/application/favorite"
	appinquiry "github.com/xiebiao/mall/internal/application/inquiry"
	appnotification "github.com/xiebiao/mall/internal/application/notification"
	apporder "github.com/xiebiao/mall/internal/application/order"
	appproduct "github.com/xiebiao/mall/internal/application/product"
	appreview "github.com/xiebiao/mall/internal/application/review"
	appupload "github.com/xiebiao/mall/internal/application/upload"
	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/messaging"
	"github.com/xiebiao/mall/internal/infrastructure/oauth"
	rediscache "github.com/xiebiao/mall/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/mall/internal/interface/http/handler"
	"github.com/xiebiao/mall/internal/interface/http/middleware"
	"github.com/xiebiao/mall/pkg/jwt"
	"github.com/xiebiao/mall/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type memoryObjectStore struct{ keys []string }

func (m *memoryObjectStore) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.example.com/" + key, nil
}

// allowAll 始终放行的限流存储
type allowAll struct{}

func (allowAll) Allow(context.Context, string, string, int, time.Duration) (rediscache.LimitResult, error) {
	return rediscache.LimitResult{Allowed: true, Limit: 1000, Remaining: 999}, nil
}

type testApp struct {
	engine *gin.Engine
	store  *apptest.Store
	jwt    *jwt.Manager
	health map[string]handler.Checker
	files  *memoryObjectStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Tracing: config.TracingConfig{ServiceName: "mall-test"},
	}

	store := apptest.NewStore()
	tx := store.Transactor()
	jm := jwt.NewManager(jwt.Options{Secret: "router-test", AccessTokenExpire: time.Hour, RefreshTokenExpire: 24 * time.Hour})
	blacklist := apptest.NewBlacklist()
	cache := apptest.NewCache()
	userService := user.NewServiceWithCost(store.Users(), bcrypt.MinCost)
	publisher := messaging.NewLocalPublisher(appnotification.NewOrderEventHandler(store.NotificationRepo(), log), log)
	files := &memoryObjectStore{}
	health := map[string]handler.Checker{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return nil },
	}

	h := Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService, jm, log),
			appuser.NewLoginUseCase(userService, jm, log),
			appuser.NewRefreshTokenUseCase(store.Users(), jm, blacklist),
			appuser.NewLogoutUseCase(jm, blacklist, log),
			appuser.NewGetProfileUseCase(store.Users()),
			appuser.NewSocialLoginUseCase(oauth.NewRegistry(cfg), userService, jm, log),
		),
		Product: handler.NewProductHandler(
			appproduct.NewListProductsUseCase(store.Products(), cache, time.Minute, log),
			appproduct.NewGetProductUseCase(store.Products(), cache, time.Minute, log),
			appproduct.NewManageProductUseCase(store.Products(), cache, log),
		),
		Cart: handler.NewCartHandler(appcart.NewCartUseCase(store.Cart(), store.Products())),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(store.Products(), store.Orders(), store.Coupons(), store.Cart(), tx, cache, publisher, log),
			apporder.NewCancelOrderUseCase(store.Orders(), store.Products(), store.Coupons(), tx, cache, publisher, log),
			apporder.NewListOrdersUseCase(store.Orders()),
			apporder.NewGetOrderUseCase(store.Orders()),
		),
		AdminOrder: handler.NewAdminOrderHandler(
			apporder.NewListOrdersUseCase(store.Orders()),
			apporder.NewGetOrderUseCase(store.Orders()),
			apporder.NewUpdateOrderStatusUseCase(store.Orders(), store.Products(), store.Coupons(), tx, cache, publisher, log),
		),
		Coupon: handler.NewCouponHandler(
			appcoupon.NewAdminCouponUseCase(store.Coupons(), store.Users(), tx, log),
			appcoupon.NewUserCouponUseCase(store.Coupons(), tx),
		),
		Favorite:     handler.NewFavoriteHandler(appfavorite.NewFavoriteUseCase(store.Favorites(), store.Products())),
		Review:       handler.NewReviewHandler(appreview.NewReviewUseCase(store.Reviews(), store.Orders(), store.Products(), log)),
		Notification: handler.NewNotificationHandler(appnotification.NewNotificationUseCase(store.NotificationRepo())),
		Banner:       handler.NewBannerHandler(appbanner.NewBannerUseCase(store.Banners(), cache, time.Minute, log)),
		Inquiry: handler.NewInquiryHandler(
			appinquiry.NewInquiryUseCase(store.Inquiries(), store.Products(), store.Users(), store.NotificationRepo(), log),
		),
		AdminUser: handler.NewAdminUserHandler(appuser.NewAdminUserUseCase(store.Users())),
		Upload:       handler.NewUploadHandler(appupload.NewUploadUseCase(files, appupload.Limits{}, log), 1<<20),
		Health:       handler.NewHealthHandlerWithChecks(health),
	}

	auth := middleware.NewAuthMiddleware(jm, blacklist)
	limiter := middleware.NewRateLimiter(allowAll{}, cfg, jm, log)

	return &testApp{
		engine: New(cfg, log, h, auth, limiter),
		store:  store,
		jwt:    jm,
		health: health,
		files:  files,
	}
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	admin := a.store.AddUser(user.User{Email: "admin@example.com", Name: "관리자", IsActive: true, IsAdmin: true, Provider: user.ProviderLocal})
	pair, err := a.jwt.GenerateTokenPair(admin.ID, admin.Email, true)
	require.NoError(t, err)
	return pair.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","services":{"database":"up","redis":"up"}}`, w.Body.String())

	app.health["redis"] = func(context.Context) error { return errors.New("connection refused") }
	w = app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	w = app.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/orders/{id}/cancel")
	assert.Contains(t, w.Body.String(), "/admin/inquiries/{id}/answer")

	w = app.do(http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	signup := map[string]interface{}{"email": "buyer@example.com", "password": "password123", "name": "구매자"}
	w := app.do(http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tokens := decode[appuser.AuthResponse](t, w)
	assert.NotEmpty(t, tokens.AccessToken)

	w = app.do(http.MethodPost, "/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "buyer@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "buyer@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	tokens = decode[appuser.AuthResponse](t, w)

	w = app.do(http.MethodGet, "/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", decode[appuser.UserDTO](t, w).Email)

	w = app.do(http.MethodPost, "/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/auth/me", tokens.AccessToken, nil).Code)

	w = app.do(http.MethodPost, "/auth/signup", "", map[string]string{"email": "bad", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode[response.ErrorBody](t, w).Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	buyer := app.store.AddUser(user.User{Email: "buyer@example.com", Name: "구매자", IsActive: true, Provider: user.ProviderLocal})
	pair, err := app.jwt.GenerateTokenPair(buyer.ID, buyer.Email, false)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/admin/orders", "", nil).Code)
	w := app.do(http.MethodGet, "/admin/orders", pair.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode[response.ErrorBody](t, w).Code)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/admin/orders", app.adminToken(t), nil).Code)
}

func TestShoppingFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	// 管理员上架商品
	w := app.do(http.MethodPost, "/admin/products", admin, map[string]interface{}{
		"name": "오버핏 셔츠", "price": 39000, "stockQuantity": 10, "colors": []string{"블랙"}, "sizes": []string{"M"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[appproduct.ProductDTO](t, w)
	productPath := "/products/" + strconv.FormatUint(uint64(created.ID), 10)

	w = app.do(http.MethodGet, "/products?search="+url.QueryEscape("셔츠"), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[appproduct.ListProductsResponse](t, w).Total)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, productPath, "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/products/abc", "", nil).Code)

	// 用户注册并加入购物车
	w = app.do(http.MethodPost, "/auth/signup", "", map[string]interface{}{"email": "buyer@example.com", "password": "password123", "name": "구매자"})
	require.Equal(t, http.StatusOK, w.Code)
	auth := decode[appuser.AuthResponse](t, w)
	token := auth.AccessToken

	w = app.do(http.MethodPost, "/cart", token, map[string]interface{}{"productId": created.ID, "quantity": 2, "color": "블랙", "size": "M"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = app.do(http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[appcart.CartDTO](t, w).Items, 1)

	// 库存不足时不创建订单
	shipping := map[string]string{"recipientName": "홍길동", "phone": "010-1234-5678", "postalCode": "06236", "address": "서울특별시 강남구"}
	w = app.do(http.MethodPost, "/orders", token, map[string]interface{}{
		"items":           []map[string]interface{}{{"productId": created.ID, "quantity": 11, "color": "블랙", "size": "M"}},
		"shippingAddress": shipping, "paymentMethod": "card",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10, app.store.Stock(created.ID))

	w = app.do(http.MethodPost, "/orders", token, map[string]interface{}{
		"items":           []map[string]interface{}{{"productId": created.ID, "quantity": 2, "color": "블랙", "size": "M"}},
		"shippingAddress": shipping, "paymentMethod": "card",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	placed := decode[apporder.CreateOrderResponse](t, w)
	assert.Regexp(t, `^\d{8}-[0-9A-Z]{8}$`, placed.OrderNumber)
	assert.Equal(t, 8, app.store.Stock(created.ID))
	assert.Zero(t, app.store.CartCount(auth.User.ID), "下单后购物车条目被移除")

	w = app.do(http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[apporder.ListOrdersResponse](t, w).Total)

	orderPath := "/orders/" + strconv.FormatUint(uint64(placed.OrderID), 10)
	w = app.do(http.MethodPut, orderPath+"/cancel", token, map[string]string{"reason": "단순 변심"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, app.store.Stock(created.ID))

	// 已取消的订单不能再次取消
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPut, orderPath+"/cancel", token, nil).Code)

	// 下单和取消各产生一条通知
	w = app.do(http.MethodGet, "/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decode[appnotification.ListResponse](t, w)
	assert.EqualValues(t, 2, notifications.Total)
	assert.EqualValues(t, 2, notifications.UnreadCount)

	w = app.do(http.MethodPut, "/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"updated":2}`, w.Body.String())

	// 收藏
	favPath := "/favorites/" + strconv.FormatUint(uint64(created.ID), 10)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, favPath, token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, favPath, token, nil).Code)
	w = app.do(http.MethodGet, favPath, token, nil)
	assert.JSONEq(t, `{"isFavorited":true,"favoriteCount":1}`, w.Body.String())
	w = app.do(http.MethodPost, favPath+"/toggle", token, nil)
	assert.JSONEq(t, `{"isFavorited":false,"favoriteCount":0}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, favPath, token, nil).Code)

	// 未送达不能评价
	w = app.do(http.MethodGet, productPath+"/reviews/eligibility", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[appreview.EligibilityResponse](t, w).CanReview)
}

func TestAdminCouponFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	buyer := app.store.AddUser(user.User{Email: "buyer@example.com", Name: "구매자", IsActive: true, Provider: user.ProviderLocal})
	pair, err := app.jwt.GenerateTokenPair(buyer.ID, buyer.Email, false)
	require.NoError(t, err)

	coupon := map[string]interface{}{
		"code": "welcome10", "name": "신규가입 10% 할인", "discountType": "percentage", "discountValue": 10,
		"validFrom": time.Now().Add(-time.Hour), "validUntil": time.Now().Add(24 * time.Hour),
	}
	w := app.do(http.MethodPost, "/admin/coupons", admin, coupon)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[appcoupon.CouponDTO](t, w)
	assert.Equal(t, "WELCOME10", created.Code)

	assert.Equal(t, http.StatusConflict, app.do(http.MethodPost, "/admin/coupons", admin, coupon).Code)

	w = app.do(http.MethodPost, "/coupons/claim", pair.AccessToken, map[string]string{"code": "welcome10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodGet, "/coupons", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]appcoupon.UserCouponDTO](t, w), 1)

	issuePath := "/admin/coupons/" + strconv.FormatUint(uint64(created.ID), 10) + "/issue"
	w = app.do(http.MethodPost, issuePath, admin, map[string]uint{"userId": buyer.ID})
	assert.Equal(t, http.StatusConflict, w.Code, "重复发放")
}

func TestUpload(t *testing.T) {
	app := newTestApp(t)
	buyer := app.store.AddUser(user.User{Email: "buyer@example.com", Name: "구매자", IsActive: true, Provider: user.ProviderLocal})
	pair, err := app.jwt.GenerateTokenPair(buyer.ID, buyer.Email, false)
	require.NoError(t, err)

	upload := func(path, field, filename string, data []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, path, &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		return w
	}

	w := upload("/uploads/image", "file", "shirt.png", pngData)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[appupload.Response](t, w)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Equal(t, "shirt.png", resp.Filename)
	require.Len(t, app.files.keys, 1)
	assert.Regexp(t, `^images/\d{4}/\d{2}/[0-9a-f-]{36}\.png$`, app.files.keys[0])

	assert.Equal(t, http.StatusBadRequest, upload("/uploads/image", "other", "shirt.png", pngData).Code)
	assert.Equal(t, http.StatusBadRequest, upload("/uploads/video", "file", "shirt.png", pngData).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, upload("/uploads/image", "file", "big.png", make([]byte, 2<<20)).Code)
}

func TestProductValidation(t *testing.T) {
	app := newTestApp(t)
	app.store.AddProduct(product.Product{Name: "비활성", Price: 1000, StockQuantity: 1, IsActive: false})

	w := app.do(http.MethodGet, "/products?limit=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[appproduct.ListProductsResponse](t, w).Total)
}

func TestCancelOrder_ChunkedBody(t *testing.T) {
	app := newTestApp(t)
	p := app.store.AddProduct(product.Product{Name: "셔츠", Price: 39000, StockQuantity: 5, IsActive: true})
	buyer := app.store.AddUser(user.User{Email: "buyer@example.com", Name: "구매자", IsActive: true, Provider: user.ProviderLocal})
	pair, err := app.jwt.GenerateTokenPair(buyer.ID, buyer.Email, false)
	require.NoError(t, err)

	w := app.do(http.MethodPost, "/orders", pair.AccessToken, map[string]interface{}{
		"items":           []map[string]interface{}{{"productId": p.ID, "quantity": 1}},
		"shippingAddress": map[string]string{"recipientName": "홍길동", "phone": "010-1234-5678", "postalCode": "06236", "address": "서울특별시 강남구"},
		"paymentMethod":   "card",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	placed := decode[apporder.CreateOrderResponse](t, w)

	// 非*bytes.Buffer的body，ContentLength为-1
	body := io.NopCloser(strings.NewReader(`{"reason":"배송 지연"}`))
	req := httptest.NewRequest(http.MethodPut, "/orders/"+strconv.FormatUint(uint64(placed.OrderID), 10)+"/cancel", body)
	require.EqualValues(t, -1, req.ContentLength)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w = httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	o, ok := app.store.Order(placed.OrderID)
	require.True(t, ok)
	assert.Equal(t, "배송 지연", o.CancelReason)
	assert.Equal(t, 5, app.store.Stock(p.ID))

	// 非法JSON仍然返回400
	w = app.do(http.MethodPut, "/orders/"+strconv.FormatUint(uint64(placed.OrderID), 10)+"/cancel", pair.AccessToken, "not-an-object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (a *testApp) userToken(t *testing.T, email, name string) (string, *user.User) {
	t.Helper()
	u := a.store.AddUser(user.User{Email: email, Name: name, IsActive: true, Provider: user.ProviderLocal})
	pair, err := a.jwt.GenerateTokenPair(u.ID, u.Email, false)
	require.NoError(t, err)
	return pair.AccessToken, u
}

func TestBannerRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	buyer, _ := app.userToken(t, "buyer@example.com", "구매자")

	body := map[string]interface{}{
		"title": "봄 시즌 세일", "bannerImage": "https://cdn.example.com/b/1.png",
		"contentBlocks": []map[string]string{{"type": "text", "content": "최대 50%"}},
	}
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/admin/banners", buyer, body).Code)

	w := app.do(http.MethodPost, "/admin/banners", admin, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[appbanner.BannerDTO](t, w)
	assert.True(t, created.IsActive)
	bannerPath := "/banners/" + strconv.FormatUint(uint64(created.ID), 10)

	w = app.do(http.MethodPost, "/admin/banners", admin, map[string]interface{}{
		"title": "영상", "bannerImage": "https://cdn.example.com/b/2.png",
		"contentBlocks": []map[string]string{{"type": "video", "content": "/v.mp4"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/banners/active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[appbanner.ListResponse](t, w).Total)

	w = app.do(http.MethodPut, "/admin"+bannerPath, admin, map[string]interface{}{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "봄 시즌 세일", decode[appbanner.BannerDTO](t, w).Title, "未提交的字段保持不变")

	w = app.do(http.MethodGet, "/banners/active", "", nil)
	assert.Zero(t, decode[appbanner.ListResponse](t, w).Total)
	w = app.do(http.MethodGet, "/banners", "", nil)
	assert.Equal(t, 1, decode[appbanner.ListResponse](t, w).Total)
	w = app.do(http.MethodGet, "/banners?activeOnly=true", "", nil)
	assert.Zero(t, decode[appbanner.ListResponse](t, w).Total)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, bannerPath, "", nil).Code)
	w = app.do(http.MethodDelete, "/admin"+bannerPath, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, bannerPath, "", nil).Code)
}

func TestInquiryRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	buyer, buyerUser := app.userToken(t, "buyer@example.com", "구매자")
	other, _ := app.userToken(t, "other@example.com", "다른사람")

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/inquiries", "", nil).Code)

	w := app.do(http.MethodPost, "/inquiries", buyer, map[string]interface{}{"type": "complaint", "title": "제목", "content": "내용"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decode[response.ErrorBody](t, w).Code)

	w = app.do(http.MethodPost, "/inquiries", buyer, map[string]interface{}{"type": "delivery", "title": "배송 문의", "content": "언제 도착하나요?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[appinquiry.InquiryDTO](t, w)
	inquiryPath := "/inquiries/" + strconv.FormatUint(uint64(created.ID), 10)

	w = app.do(http.MethodGet, "/inquiries", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[appinquiry.ListResponse](t, w).Total)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, inquiryPath, other, nil).Code)

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/admin/inquiries", buyer, nil).Code)
	w = app.do(http.MethodGet, "/admin/inquiries?isAnswered=false&type=delivery", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode[appinquiry.ListResponse](t, w).Total)

	w = app.do(http.MethodPost, "/admin"+inquiryPath+"/answer", admin, map[string]string{"answer": "내일 도착 예정입니다."})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[map[string]interface{}](t, w)["success"].(bool))

	w = app.do(http.MethodGet, inquiryPath, buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	answered := decode[appinquiry.InquiryDTO](t, w)
	assert.True(t, answered.IsAnswered)
	assert.Equal(t, "관리자", answered.AnsweredBy)
	assert.Len(t, app.store.Notifications(buyerUser.ID), 1)

	// 已答复的咨询不能删除
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodDelete, inquiryPath, buyer, nil).Code)

	w = app.do(http.MethodGet, "/admin/inquiries?isAnswered=false", admin, nil)
	assert.Zero(t, decode[appinquiry.ListResponse](t, w).Total)
}

func TestAdminUserRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	buyer, buyerUser := app.userToken(t, "buyer@example.com", "구매자")
	app.store.AddUser(user.User{Email: "other@shop.kr", Name: "다른사람", Phone: "010-9999-0000", IsActive: true})

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/admin/users", buyer, nil).Code)

	w := app.do(http.MethodGet, "/admin/users?query="+url.QueryEscape("example.com"), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	found := decode[appuser.SearchUsersResponse](t, w)
	assert.EqualValues(t, 2, found.Total, "管理员和买家的邮箱都匹配")

	w = app.do(http.MethodGet, "/admin/users?query=9999&limit=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	found = decode[appuser.SearchUsersResponse](t, w)
	require.Len(t, found.Users, 1)
	assert.Equal(t, "다른사람", found.Users[0].Name)

	w = app.do(http.MethodGet, "/admin/users/"+strconv.FormatUint(uint64(buyerUser.ID), 10), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", decode[appuser.AdminUserDTO](t, w).Email)

	w = app.do(http.MethodGet, "/admin/users/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[response.ErrorBody](t, w).Code)
}
