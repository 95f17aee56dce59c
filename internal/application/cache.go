package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/pkg/metrics"
)

// Cache 旁路缓存，Redis实现见persistence/redis.Cache
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, prefix string) error
}

// Cached 先读缓存，未命中或缓存不可用时执行load并回写
// 缓存错误只记录日志，不影响查询；prefix用于命中率指标
func Cached[T any](ctx context.Context, cache Cache, log *zap.Logger, prefix, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var v T
	hit, err := cache.Get(ctx, key, &v)
	switch {
	case err != nil:
		log.Warn("读取缓存失败，回源数据库", zap.String("key", key), zap.Error(err))
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"prefix": prefix, "result": "error"})
	case hit:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"prefix": prefix, "result": "hit"})
		return v, nil
	default:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"prefix": prefix, "result": "miss"})
	}

	v, err = load()
	if err != nil {
		return v, err
	}
	if err := cache.Set(ctx, key, v, ttl); err != nil {
		log.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
