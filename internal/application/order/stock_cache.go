package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	appproduct "github.com/xiebiao/mall/internal/application/product"
)

// evictProductCache 库存变化后清除商品缓存（详情和列表都带库存）
// 失败只记录日志，缓存最迟在TTL后过期
func evictProductCache(ctx context.Context, cache application.Cache, log *zap.Logger) {
	if err := cache.Invalidate(ctx, appproduct.CachePrefix); err != nil {
		log.Warn("清除商品缓存失败", zap.Error(err))
	}
}
