package dto

// ListProductsQuery 商品列表查询参数
type ListProductsQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Category string `form:"category"`
	Search   string `form:"search" binding:"max=100"`
}

// CreateProductRequest 创建商品
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200" example:"오버핏 셔츠"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" binding:"min=0" example:"39000"`
	OriginalPrice int64    `json:"originalPrice" binding:"min=0" example:"49000"`
	Categories    []string `json:"categories"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	ImageURL      string   `json:"imageUrl" binding:"max=500"`
	StockQuantity int      `json:"stockQuantity" binding:"min=0" example:"100"`
	IsNew         bool     `json:"isNew"`
	IsBest        bool     `json:"isBest"`
	IsActive      *bool    `json:"isActive"` // 缺省为上架
}

// UpdateProductRequest 部分更新，未传的字段保持不变
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=200"`
	Description   *string  `json:"description"`
	Price         *int64   `json:"price" binding:"omitempty,min=0"`
	OriginalPrice *int64   `json:"originalPrice" binding:"omitempty,min=0"`
	Categories    []string `json:"categories"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,max=500"`
	StockQuantity *int     `json:"stockQuantity" binding:"omitempty,min=0"`
	IsNew         *bool    `json:"isNew"`
	IsBest        *bool    `json:"isBest"`
	IsActive      *bool    `json:"isActive"`
}
