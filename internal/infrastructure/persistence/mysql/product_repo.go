package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/product"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// productRepository 商品仓储实现
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindByIDs 批量查询，不存在的ID不出现在结果中
func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*product.Product, error) {
	result := make(map[uint]*product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []ProductModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	for i := range models {
		result[models[i].ID] = toProductEntity(&models[i])
	}
	return result, nil
}

// Update 更新商品信息（不包括库存以外的计数字段）
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	result := dbFrom(ctx, r.db).Model(&ProductModel{ID: p.ID}).
		Select("name", "description", "price", "original_price", "categories", "colors", "sizes",
			"image_url", "stock_quantity", "is_new", "is_best", "is_active").
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// List 分页查询，按创建时间倒序
func (r *productRepository) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, int64, error) {
	query := dbFrom(ctx, r.db).Model(&ProductModel{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("JSON_CONTAINS(categories, JSON_QUOTE(?))", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}
	if total == 0 {
		return []*product.Product{}, 0, nil
	}

	var models []ProductModel
	if err := pageQuery(query.Order("created_at DESC"), filter.Offset, filter.Limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// DecreaseStock 原子扣减库存
// UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?
// 并发下单时数据库行锁保证只有库存充足的请求能更新成功
func (r *productRepository) DecreaseStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return product.ErrInvalidQuantity
	}

	db := dbFrom(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 未更新任何行：区分商品不存在和库存不足
	var model ProductModel
	if err := db.Select("id", "name", "stock_quantity").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.ErrProductNotFound
		}
		return apperrors.Wrap(err, "查询库存失败")
	}
	return product.ErrInsufficientStock.WithMessagef("商品「%s」库存不足，购买数量:%d，当前库存:%d",
		model.Name, quantity, model.StockQuantity)
}

// IncreaseStock 归还库存
func (r *productRepository) IncreaseStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return product.ErrInvalidQuantity
	}
	// 商品被软删除后依然要归还库存
	result := dbFrom(ctx, r.db).Unscoped().Model(&ProductModel{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "归还库存失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := dbFrom(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return apperrors.Wrap(err, "更新浏览量失败")
	}
	return nil
}

func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Categories:    nonNilStrings(p.Categories),
		Colors:        nonNilStrings(p.Colors),
		Sizes:         nonNilStrings(p.Sizes),
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		IsNew:         p.IsNew,
		IsBest:        p.IsBest,
		IsActive:      p.IsActive,
		ViewCount:     p.ViewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductEntity(m *ProductModel) *product.Product {
	return &product.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Categories:    nonNilStrings(m.Categories),
		Colors:        nonNilStrings(m.Colors),
		Sizes:         nonNilStrings(m.Sizes),
		ImageURL:      m.ImageURL,
		StockQuantity: m.StockQuantity,
		IsNew:         m.IsNew,
		IsBest:        m.IsBest,
		IsActive:      m.IsActive,
		ViewCount:     m.ViewCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// nonNilStrings JSON列存[]而不是null
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
