package banner

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 内容块类型
const (
	BlockText  = "text"
	BlockImage = "image"
)

// ContentBlock 横幅详情页内容，按顺序渲染
type ContentBlock struct {
	Type    string
	Content string
}

// Banner 首页活动横幅
// 排序：display_order升序，同序号时新建的在前
type Banner struct {
	ID            uint
	Title         string
	ImageURL      string
	ContentBlocks []ContentBlock
	IsActive      bool
	DisplayOrder  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate 标题和图片必填，内容块只允许text/image
func (b *Banner) Validate() error {
	if b.Title == "" || b.ImageURL == "" {
		return ErrMissingField
	}
	for _, blk := range b.ContentBlocks {
		if blk.Type != BlockText && blk.Type != BlockImage {
			return ErrInvalidBlockType.WithMessagef("不支持的内容块类型: %s", blk.Type)
		}
	}
	return nil
}

var (
	ErrBannerNotFound   = apperrors.NotFound("横幅不存在")
	ErrMissingField     = apperrors.Validation("标题和横幅图片不能为空")
	ErrInvalidBlockType = apperrors.BadRequest("不支持的内容块类型")
)

// Repository 横幅仓储接口
type Repository interface {
	Create(ctx context.Context, b *Banner) error
	FindByID(ctx context.Context, id uint) (*Banner, error)
	Update(ctx context.Context, b *Banner) error
	// Delete 不存在时返回ErrBannerNotFound
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*Banner, error)
}
