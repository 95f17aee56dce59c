package product

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/product"
	rediscache "github.com/xiebiao/mall/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/mall/pkg/response"
)

// CachePrefix 商品缓存Key前缀，写操作后整体失效
const CachePrefix = "product"

// DefaultCacheTTL 未配置cache.product_ttl时使用
const DefaultCacheTTL = 5 * time.Minute

func cached[T any](ctx context.Context, cache application.Cache, log *zap.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	return application.Cached(ctx, cache, log, CachePrefix, key, ttl, load)
}

// ListProductsUseCase 商品列表（只返回上架商品）
type ListProductsUseCase struct {
	repo  product.Repository
	cache application.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewListProductsUseCase 创建用例
func NewListProductsUseCase(repo product.Repository, cache application.Cache, ttl time.Duration, log *zap.Logger) *ListProductsUseCase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ListProductsUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Execute 查询列表，limit范围1..100，默认20
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	page, limit := response.NormalizePage(req.Page, req.Limit, 20, 100)
	category := strings.TrimSpace(req.Category)
	search := strings.TrimSpace(req.Search)

	key := rediscache.Key(CachePrefix, "list", page, limit, category, search)
	return cached(ctx, uc.cache, uc.log, key, uc.ttl, func() (*ListProductsResponse, error) {
		products, total, err := uc.repo.List(ctx, product.ListFilter{
			Category:   category,
			Search:     search,
			ActiveOnly: true,
			Offset:     (page - 1) * limit,
			Limit:      limit,
		})
		if err != nil {
			return nil, err
		}

		items := make([]ProductDTO, len(products))
		for i, p := range products {
			items[i] = toProductDTO(p)
		}
		return &ListProductsResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: response.TotalPages(total, limit),
		}, nil
	})
}

// GetProductUseCase 商品详情
type GetProductUseCase struct {
	repo  product.Repository
	cache application.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewGetProductUseCase 创建用例
func NewGetProductUseCase(repo product.Repository, cache application.Cache, ttl time.Duration, log *zap.Logger) *GetProductUseCase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &GetProductUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Execute 查询详情并累加浏览量
// 缓存中的浏览量可能落后于数据库，在TTL内可接受
func (uc *GetProductUseCase) Execute(ctx context.Context, id uint) (*ProductDTO, error) {
	dto, err := cached(ctx, uc.cache, uc.log, rediscache.Key(CachePrefix, "get", id), uc.ttl, func() (*ProductDTO, error) {
		p, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		d := toProductDTO(p)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.repo.IncrementViewCount(ctx, id); err != nil {
		uc.log.Warn("更新浏览量失败", zap.Uint("product_id", id), zap.Error(err))
	}
	return dto, nil
}
