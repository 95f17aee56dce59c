package product

import (
	"time"

	"github.com/xiebiao/mall/internal/domain/product"
)

// ProductDTO 商品信息
type ProductDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"originalPrice"`
	Categories    []string  `json:"categories"`
	Colors        []string  `json:"colors"`
	Sizes         []string  `json:"sizes"`
	ImageURL      string    `json:"imageUrl"`
	StockQuantity int       `json:"stockQuantity"`
	IsNew         bool      `json:"isNew"`
	IsBest        bool      `json:"isBest"`
	IsActive      bool      `json:"isActive"`
	ViewCount     int64     `json:"viewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListProductsRequest 商品列表查询
type ListProductsRequest struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// ListProductsResponse 商品分页列表
type ListProductsResponse struct {
	Items      []ProductDTO `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}

// CreateProductRequest 管理员创建商品
type CreateProductRequest struct {
	Name          string
	Description   string
	Price         int64
	OriginalPrice int64
	Categories    []string
	Colors        []string
	Sizes         []string
	ImageURL      string
	StockQuantity int
	IsNew         bool
	IsBest        bool
	IsActive      bool
}

// UpdateProductRequest 管理员更新商品，nil字段保持不变
type UpdateProductRequest struct {
	ID            uint
	Name          *string
	Description   *string
	Price         *int64
	OriginalPrice *int64
	Categories    []string
	Colors        []string
	Sizes         []string
	ImageURL      *string
	StockQuantity *int
	IsNew         *bool
	IsBest        *bool
	IsActive      *bool
}

func toProductDTO(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Categories:    nonNil(p.Categories),
		Colors:        nonNil(p.Colors),
		Sizes:         nonNil(p.Sizes),
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

// nonNil 空切片序列化为[]而不是null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
