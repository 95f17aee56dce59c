package product

import (
	"time"
)

// Product 商品实体
// 金额统一使用int64（最小货币单位），避免浮点误差
type Product struct {
	ID            uint
	Name          string
	Description   string
	Price         int64
	OriginalPrice int64 // 划线价，0表示无
	Categories    []string
	Colors        []string
	Sizes         []string
	ImageURL      string
	StockQuantity int
	IsNew         bool
	IsBest        bool
	IsActive      bool
	ViewCount     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate 校验商品基础字段
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.OriginalPrice < 0 {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}

// CheckPurchasable 下单前校验：商品已上架且库存充足
func (p *Product) CheckPurchasable(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !p.IsActive {
		return ErrProductInactive.WithMessagef("商品「%s」已下架", p.Name)
	}
	if quantity > p.StockQuantity {
		return ErrInsufficientStock.WithMessagef("商品「%s」库存不足，购买数量:%d，当前库存:%d",
			p.Name, quantity, p.StockQuantity)
	}
	return nil
}

// HasCategory 是否属于某分类
func (p *Product) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
