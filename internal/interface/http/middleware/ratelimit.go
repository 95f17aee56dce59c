package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/mall/internal/infrastructure/config"
	rediscache "github.com/xiebiao/mall/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/jwt"
	"github.com/xiebiao/mall/pkg/metrics"
)

// 限流规则名称，对应配置 rate_limit.limits.<name>
const (
	LimitGlobal     = "global"
	LimitAuthLogin  = "auth_login"
	LimitAuthSignup = "auth_signup"
	LimitAPIDefault = "api_default"
	LimitSearch     = "search"
	LimitCreate     = "create"
	LimitPayment    = "payment"
	LimitUpload     = "upload"
)

// LimitStore 分布式计数器，由redis.RateLimitStore实现
type LimitStore interface {
	Allow(ctx context.Context, name, key string, limit int, window time.Duration) (rediscache.LimitResult, error)
}

// RateLimitBody 429响应体
type RateLimitBody struct {
	Error      string `json:"error" example:"请求过于频繁，请稍后再试"`
	Code       string `json:"code" example:"rate_limit_exceeded"`
	RetryAfter int    `json:"retry_after" example:"42"`
}

// RateLimiter 按用户或IP限流
// 正常情况下使用Redis固定窗口计数（多实例共享），Redis不可用时降级为进程内令牌桶
type RateLimiter struct {
	store    LimitStore
	cfg      config.RateLimitConfig
	jwt      *jwt.Manager
	fallback *localLimiter
	log      *zap.Logger
}

// NewRateLimiter 创建限流中间件
func NewRateLimiter(store LimitStore, cfg *config.Config, jwtManager *jwt.Manager, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		store:    store,
		cfg:      cfg.RateLimit,
		jwt:      jwtManager,
		fallback: newLocalLimiter(),
		log:      log,
	}
}

// Global 全局默认限流
func (l *RateLimiter) Global() gin.HandlerFunc {
	return l.Limit(LimitGlobal)
}

// Limit 按名称限流
//
//	auth.POST("/login", limiter.Limit(middleware.LimitAuthLogin), h.Login)
func (l *RateLimiter) Limit(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.cfg.Enabled {
			c.Next()
			return
		}
		rule := l.cfg.Rule(name)
		if rule.Requests <= 0 || rule.Window <= 0 {
			c.Next()
			return
		}

		key := l.clientKey(c)
		result, err := l.store.Allow(c.Request.Context(), name, key, rule.Requests, rule.Window)
		if err != nil {
			l.log.Warn("Redis限流失败，使用本地限流", zap.String("limit", name), zap.Error(err))
			result = l.fallback.allow(name+":"+key, rule)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if result.Allowed {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		metrics.IncCounterVec(metrics.RateLimitRejectedTotal, map[string]string{"limit": name})
		l.log.Info("请求被限流", zap.String("limit", name), zap.String("key", key))

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitBody{
			Error:      "请求过于频繁，请稍后再试",
			Code:       apperrors.CodeTooManyRequests,
			RetryAfter: retryAfter,
		})
	}
}

// clientKey 有合法Token时按用户限流，否则按IP
func (l *RateLimiter) clientKey(c *gin.Context) string {
	if userID := GetUserID(c); userID != 0 {
		return "user:" + strconv.FormatUint(uint64(userID), 10)
	}
	if token := BearerToken(c); token != "" && l.jwt != nil {
		if claims, err := l.jwt.ParseAccessToken(token); err == nil {
			return "user:" + strconv.FormatUint(uint64(claims.UserID), 10)
		}
	}
	return "ip:" + ClientIP(c)
}

// ClientIP X-Forwarded-For第一个地址 > X-Real-IP > 连接地址
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// localLimiter 进程内令牌桶，每个name:key一个rate.Limiter
type localLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *localLimiter) allow(key string, rule config.LimitRule) rediscache.LimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.gc(now)

	v, ok := l.visitors[key]
	if !ok {
		// Window内Requests个令牌，桶容量为Requests
		every := rate.Every(rule.Window / time.Duration(rule.Requests))
		v = &visitor{limiter: rate.NewLimiter(every, rule.Requests)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	result := rediscache.LimitResult{Limit: rule.Requests}
	if v.limiter.AllowN(now, 1) {
		result.Allowed = true
		result.Remaining = int(v.limiter.TokensAt(now))
		return result
	}

	missing := 1 - v.limiter.TokensAt(now)
	result.RetryAfter = time.Duration(missing / float64(v.limiter.Limit()) * float64(time.Second))
	return result
}

// gc 每分钟清理一次长时间未访问的条目
func (l *localLimiter) gc(now time.Time) {
	if now.Sub(l.lastGC) < time.Minute {
		return
	}
	l.lastGC = now
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}
