package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xiebiao/mall/internal/domain/cart"
	"github.com/xiebiao/mall/internal/domain/product"
)

// ItemDTO 购物车条目及商品信息
type ItemDTO struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"productId"`
	ProductName   string `json:"productName"`
	ProductImage  string `json:"productImage"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	Subtotal      int64  `json:"subtotal"`
	StockQuantity int    `json:"stockQuantity"`
	IsAvailable   bool   `json:"isAvailable"` // 商品上架且库存足够
}

// CartDTO 购物车
type CartDTO struct {
	Items       []ItemDTO `json:"items"`
	TotalAmount int64     `json:"totalAmount"` // 只统计可购买条目
	TotalCount  int       `json:"totalCount"`
}

// AddItemRequest 加入购物车
type AddItemRequest struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Color     string
	Size      string
}

// CartUseCase 购物车用例
type CartUseCase struct {
	cartRepo    cart.Repository
	productRepo product.Repository
	now         func() time.Time
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, productRepo product.Repository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo, now: time.Now}
}

// Get 查询购物车，已删除的商品不返回
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartDTO, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	products, err := uc.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &CartDTO{Items: make([]ItemDTO, 0, len(items))}
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		dto := ItemDTO{
			ID:            it.ID,
			ProductID:     p.ID,
			ProductName:   p.Name,
			ProductImage:  p.ImageURL,
			Price:         p.Price,
			Quantity:      it.Quantity,
			Color:         it.Color,
			Size:          it.Size,
			Subtotal:      p.Price * int64(it.Quantity),
			StockQuantity: p.StockQuantity,
			IsAvailable:   p.CheckPurchasable(it.Quantity) == nil,
		}
		if dto.IsAvailable {
			out.TotalAmount += dto.Subtotal
		}
		out.TotalCount += it.Quantity
		out.Items = append(out.Items, dto)
	}
	return out, nil
}

// Add 加入购物车，相同商品/颜色/尺码合并数量
func (uc *CartUseCase) Add(ctx context.Context, req AddItemRequest) error {
	if req.Quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	p, err := uc.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return product.ErrProductInactive.WithMessagef("商品「%s」已下架", p.Name)
	}

	key := cart.LineKey{ProductID: req.ProductID, Color: strings.TrimSpace(req.Color), Size: strings.TrimSpace(req.Size)}
	existing, err := uc.cartRepo.FindByKey(ctx, req.UserID, key)
	switch {
	case err == nil:
		return uc.cartRepo.UpdateQuantity(ctx, existing.ID, req.UserID, existing.Quantity+req.Quantity)
	case !errors.Is(err, cart.ErrItemNotFound):
		return err
	}

	now := uc.now()
	return uc.cartRepo.Create(ctx, &cart.Item{
		UserID:    req.UserID,
		ProductID: key.ProductID,
		Quantity:  req.Quantity,
		Color:     key.Color,
		Size:      key.Size,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateQuantity 修改数量
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	return uc.cartRepo.UpdateQuantity(ctx, itemID, userID, quantity)
}

// Remove 删除条目
func (uc *CartUseCase) Remove(ctx context.Context, userID, itemID uint) error {
	return uc.cartRepo.Delete(ctx, itemID, userID)
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, userID uint) error {
	return uc.cartRepo.Clear(ctx, userID)
}
