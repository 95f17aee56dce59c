package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/cart"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartItemModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartEntity(&models[i])
	}
	return items, nil
}

func (r *cartRepository) FindByKey(ctx context.Context, userID uint, key cart.LineKey) (*cart.Item, error) {
	var model CartItemModel
	err := dbFrom(ctx, r.db).
		Where("user_id = ? AND product_id = ? AND color = ? AND size = ?", userID, key.ProductID, key.Color, key.Size).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

func (r *cartRepository) Create(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Color:     item.Color,
		Size:      item.Size,
		Quantity:  item.Quantity,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID uint, quantity int) error {
	result := dbFrom(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id, userID uint) error {
	result := dbFrom(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车商品失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func (r *cartRepository) DeleteLines(ctx context.Context, userID uint, keys []cart.LineKey) error {
	if len(keys) == 0 {
		return nil
	}

	db := dbFrom(ctx, r.db)
	cond := db.Where("1 = 0")
	for _, k := range keys {
		cond = cond.Or("product_id = ? AND color = ? AND size = ?", k.ProductID, k.Color, k.Size)
	}
	if err := db.Where("user_id = ?", userID).Where(cond).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除购物车商品失败")
	}
	return nil
}

func toCartEntity(m *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Color:     m.Color,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
