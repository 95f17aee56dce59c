package apptest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/mall/internal/domain/order"
)

// EventRecorder 记录发布的订单事件
type EventRecorder struct {
	mu     sync.Mutex
	Events []order.Event
	Err    error
}

func (r *EventRecorder) Publish(_ context.Context, evt order.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, evt)
	return r.Err
}

// Types 已发布事件的类型
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}

// Cache 内存缓存，值以JSON保存，与Redis实现行为一致
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
	Err  error
}

// NewCache 创建内存缓存
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	val, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(val, dest)
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	val, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = val
	return nil
}

func (c *Cache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix+":") {
			delete(c.data, k)
		}
	}
	return nil
}

// Len 缓存条目数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Blacklist 内存Token黑名单
type Blacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Duration
}

// NewBlacklist 创建黑名单
func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]time.Duration)}
}

func (b *Blacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ttl > 0 {
		b.tokens[token] = ttl
	}
	return nil
}

func (b *Blacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.tokens[token]
	return ok, nil
}
