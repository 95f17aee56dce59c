package dto

// BannerBlockRequest 横幅内容块，type只能是text或image
type BannerBlockRequest struct {
	Type    string `json:"type" binding:"required" example:"text"`
	Content string `json:"content" binding:"required,max=2000" example:"봄맞이 최대 50% 할인"`
}

// CreateBannerRequest 创建横幅
type CreateBannerRequest struct {
	Title         string               `json:"title" binding:"required,max=200" example:"봄 시즌 세일"`
	BannerImage   string               `json:"bannerImage" binding:"required,max=500" example:"https://cdn.example.com/banners/spring.png"`
	ContentBlocks []BannerBlockRequest `json:"contentBlocks" binding:"max=50,dive"`
	IsActive      *bool                `json:"isActive"`
	DisplayOrder  int                  `json:"displayOrder" example:"0"`
}

// UpdateBannerRequest 部分更新横幅
type UpdateBannerRequest struct {
	Title         *string              `json:"title" binding:"omitempty,max=200"`
	BannerImage   *string              `json:"bannerImage" binding:"omitempty,max=500"`
	ContentBlocks []BannerBlockRequest `json:"contentBlocks" binding:"max=50,dive"`
	IsActive      *bool                `json:"isActive"`
	DisplayOrder  *int                 `json:"displayOrder"`
}

// BannerListQuery 横幅列表参数
type BannerListQuery struct {
	ActiveOnly bool `form:"activeOnly"`
}

// CreateInquiryRequest 提交咨询
type CreateInquiryRequest struct {
	ProductID *uint  `json:"productId" example:"1"`
	Type      string `json:"type" binding:"required" example:"product"`
	Title     string `json:"title" binding:"required,max=200" example:"사이즈 문의"`
	Content   string `json:"content" binding:"required,max=5000" example:"M 사이즈 재입고 예정이 있나요?"`
}

// AnswerInquiryRequest 管理员答复
type AnswerInquiryRequest struct {
	Answer string `json:"answer" binding:"required,max=5000" example:"다음 주 입고 예정입니다."`
}

// AnswerInquiryResponse 答复结果
type AnswerInquiryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AdminInquiryQuery 管理员咨询列表参数
type AdminInquiryQuery struct {
	OffsetQuery
	IsAnswered *bool  `form:"isAnswered"`
	Type       string `form:"type"`
}

// AdminUserQuery 管理员用户搜索参数
type AdminUserQuery struct {
	PageQuery
	Query string `form:"query" binding:"max=100"`
}
