package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LimitResult 一次限流判断的结果
type LimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimitStore 固定窗口计数器
// Key：ratelimit:{name}:{key}，窗口内第一次请求时设置过期时间
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore 创建限流存储
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Allow 计数+1并判断是否超过limit
func (s *RateLimitStore) Allow(ctx context.Context, name, key string, limit int, window time.Duration) (LimitResult, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", name, key)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, window)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return LimitResult{}, fmt.Errorf("限流计数失败: %w", err)
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	result := LimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
	}
	if !result.Allowed {
		result.RetryAfter = ttl.Val()
		if result.RetryAfter <= 0 {
			result.RetryAfter = window
		}
	}
	return result, nil
}
