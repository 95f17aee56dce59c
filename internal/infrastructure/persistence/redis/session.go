package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// SessionStore Token黑名单
// JWT本身无状态，登出后把Access Token写入黑名单直到其自然过期
// Key：blacklist:{sha256(token)}，不在Redis中保存Token原文
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Revoke 将Token加入黑名单，ttl<=0时不写入（Token已过期）
func (s *SessionStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}
	return nil
}

// IsRevoked 检查Token是否在黑名单中
func (s *SessionStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return n > 0, nil
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("blacklist:%s", hex.EncodeToString(sum[:]))
}
