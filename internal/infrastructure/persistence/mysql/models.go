package mysql

import (
	"time"

	"gorm.io/gorm"
)

// 这里是infrastructure层的数据模型，包含GORM tag；domain层实体不依赖GORM
// Repository负责两者之间的转换

// UserModel 用户表
// Email和ProviderID可为空（社交账号可能不提供邮箱），用指针存NULL避免唯一索引冲突
type UserModel struct {
	ID              uint    `gorm:"primaryKey"`
	Email           *string `gorm:"uniqueIndex;size:100;comment:邮箱"`
	Password        string  `gorm:"size:255;comment:密码（bcrypt加密，社交账号为空）"`
	Name            string  `gorm:"size:50;not null;comment:姓名"`
	Phone           string  `gorm:"size:20;comment:手机号"`
	MarketingAgreed bool    `gorm:"not null;comment:是否同意营销信息"`
	IsActive        bool    `gorm:"not null;index;comment:是否启用"`
	IsAdmin         bool    `gorm:"not null;comment:是否管理员"`
	Provider        string  `gorm:"size:20;not null;uniqueIndex:idx_provider;comment:登录方式"`
	ProviderID      *string `gorm:"size:100;uniqueIndex:idx_provider;comment:第三方账号ID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// ProductModel 商品表
// categories/colors/sizes以JSON数组存储，分类筛选使用JSON_CONTAINS
type ProductModel struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"size:200;not null;index;comment:商品名称"`
	Description   string    `gorm:"type:text;comment:商品描述"`
	Price         int64     `gorm:"not null;comment:售价"`
	OriginalPrice int64     `gorm:"not null;default:0;comment:划线价"`
	Categories    []string  `gorm:"serializer:json;type:json;comment:分类"`
	Colors        []string  `gorm:"serializer:json;type:json;comment:颜色"`
	Sizes         []string  `gorm:"serializer:json;type:json;comment:尺码"`
	ImageURL      string    `gorm:"size:500;comment:主图"`
	StockQuantity int       `gorm:"not null;default:0;comment:库存"`
	IsNew         bool      `gorm:"not null;comment:新品"`
	IsBest        bool      `gorm:"not null;comment:热销"`
	IsActive      bool      `gorm:"not null;index:idx_active_created;comment:是否上架"`
	ViewCount     int64     `gorm:"not null;default:0;comment:浏览量"`
	CreatedAt     time.Time `gorm:"index:idx_active_created"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}

// OrderModel 订单表，与OrderItemModel一对多
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	UserID          uint             `gorm:"not null;index:idx_user_created;comment:买家"`
	OrderNumber     string           `gorm:"size:32;not null;uniqueIndex;comment:订单号"`
	Status          string           `gorm:"size:20;not null;index;comment:订单状态"`
	TotalAmount     int64            `gorm:"not null;comment:商品总额"`
	DiscountAmount  int64            `gorm:"not null;default:0;comment:折扣"`
	ShippingFee     int64            `gorm:"not null;default:0;comment:运费"`
	FinalAmount     int64            `gorm:"not null;comment:实付金额"`
	RecipientName   string           `gorm:"size:50;not null"`
	Phone           string           `gorm:"size:20;not null"`
	PostalCode      string           `gorm:"size:10;not null"`
	Address         string           `gorm:"size:255;not null"`
	AddressDetail   string           `gorm:"size:255"`
	DeliveryMessage string           `gorm:"size:255"`
	PaymentMethod   string           `gorm:"size:30;not null"`
	PaymentStatus   string           `gorm:"size:20;not null"`
	UserCouponID    *uint            `gorm:"index"`
	TrackingNumber  string           `gorm:"size:50"`
	Courier         string           `gorm:"size:50"`
	CancelReason    string           `gorm:"size:255"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index:idx_user_created"`
	UpdatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细（下单时的商品快照）
type OrderItemModel struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"not null;index"`
	ProductID    uint   `gorm:"not null;index"`
	ProductName  string `gorm:"size:200;not null"`
	ProductImage string `gorm:"size:500"`
	Price        int64  `gorm:"not null;comment:下单时单价"`
	Quantity     int    `gorm:"not null"`
	Color        string `gorm:"size:50"`
	Size         string `gorm:"size:50"`
	Subtotal     int64  `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// CartItemModel 购物车
type CartItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_cart_line"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_cart_line"`
	Color     string `gorm:"size:50;not null;default:'';uniqueIndex:idx_cart_line"`
	Size      string `gorm:"size:50;not null;default:'';uniqueIndex:idx_cart_line"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// CouponModel 优惠券模板
type CouponModel struct {
	ID                uint   `gorm:"primaryKey"`
	Code              string `gorm:"size:50;not null;uniqueIndex"`
	Name              string `gorm:"size:100;not null"`
	Description       string `gorm:"size:500"`
	DiscountType      string `gorm:"size:20;not null"`
	DiscountValue     int64  `gorm:"not null"`
	MinPurchaseAmount int64  `gorm:"not null;default:0"`
	MaxDiscountAmount int64  `gorm:"not null;default:0"`
	ValidFrom         time.Time
	ValidUntil        time.Time
	UsageLimit        int  `gorm:"not null;default:0"`
	UsageCount        int  `gorm:"not null;default:0"`
	IsActive          bool `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CouponModel) TableName() string {
	return "coupons"
}

// UserCouponModel 用户持有的优惠券
type UserCouponModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_coupon"`
	CouponID  uint `gorm:"not null;uniqueIndex:idx_user_coupon"`
	IsUsed    bool `gorm:"not null"`
	UsedAt    *time.Time
	OrderID   *uint       `gorm:"index"`
	Coupon    CouponModel `gorm:"foreignKey:CouponID"`
	CreatedAt time.Time
}

func (UserCouponModel) TableName() string {
	return "user_coupons"
}

// FavoriteModel 收藏
type FavoriteModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_user_product;index"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

// ReviewModel 商品评价，order_item_id唯一保证每个订单明细最多一条评价
type ReviewModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	ProductID   uint      `gorm:"not null;index"`
	OrderItemID *uint     `gorm:"uniqueIndex"`
	Rating      int       `gorm:"not null"`
	Content     string    `gorm:"type:text"`
	Images      []string  `gorm:"serializer:json;type:json"`
	User        UserModel `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// NotificationModel 站内通知
type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_user_read"`
	Type      string `gorm:"size:20;not null"`
	Title     string `gorm:"size:100;not null"`
	Message   string `gorm:"size:500;not null"`
	Link      string `gorm:"size:255"`
	IsRead    bool   `gorm:"not null;index:idx_user_read"`
	CreatedAt time.Time
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// BannerBlock 横幅内容块，以JSON数组存在content_blocks列
type BannerBlock struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// BannerModel 首页横幅
type BannerModel struct {
	ID            uint          `gorm:"primaryKey"`
	Title         string        `gorm:"size:200;not null;comment:标题"`
	ImageURL      string        `gorm:"column:banner_image;size:500;not null;comment:横幅图片"`
	ContentBlocks []BannerBlock `gorm:"serializer:json;type:json;comment:内容块"`
	IsActive      bool          `gorm:"not null;index:idx_active_order;comment:是否展示"`
	DisplayOrder  int           `gorm:"not null;default:0;index:idx_active_order;comment:展示顺序"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BannerModel) TableName() string {
	return "banners"
}

// InquiryModel 1:1咨询
type InquiryModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index:idx_user_created"`
	ProductID  *uint  `gorm:"index;comment:商品咨询时关联的商品"`
	Type       string `gorm:"size:20;not null;index;comment:咨询类型"`
	Title      string `gorm:"size:200;not null"`
	Content    string `gorm:"type:text;not null"`
	IsAnswered bool   `gorm:"not null;index;comment:是否已答复"`
	Answer     string `gorm:"type:text"`
	AnsweredAt *time.Time
	AnsweredBy string    `gorm:"size:50"`
	CreatedAt  time.Time `gorm:"index:idx_user_created"`
	UpdatedAt  time.Time
}

func (InquiryModel) TableName() string {
	return "inquiries"
}
