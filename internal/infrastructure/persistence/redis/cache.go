package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 基于JSON序列化的旁路缓存
// 写操作后按前缀删除（SCAN + DEL），不做缓存更新
type Cache struct {
	client *redis.Client
}

// NewCache 创建缓存
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Key 生成缓存Key：prefix:fn:hash(args)
//
//	redis.Key("product", "list", page, limit, category) → product:list:3f9a1c0b...
func Key(prefix, fn string, args ...interface{}) string {
	if len(args) == 0 {
		return prefix + ":" + fn
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + ":" + fn + ":" + hex.EncodeToString(sum[:8])
}

// Get 读取缓存并反序列化到dest，未命中返回false
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("获取缓存失败: %w", err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("反序列化失败: %w", err)
	}
	return true, nil
}

// Set 序列化后写入缓存
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Invalidate 删除prefix下的所有Key
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("删除缓存失败: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存失败: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
	}
	return nil
}
