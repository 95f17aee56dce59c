package inquiry

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// 咨询类型
const (
	TypeProduct  = "product"
	TypeOrder    = "order"
	TypeDelivery = "delivery"
	TypeReturn   = "return"
	TypeGeneral  = "general"
)

// Types 全部合法类型，顺序用于错误提示
var Types = []string{TypeProduct, TypeOrder, TypeDelivery, TypeReturn, TypeGeneral}

// ValidType 判断咨询类型是否合法
func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Inquiry 1:1咨询
type Inquiry struct {
	ID         uint
	UserID     uint
	ProductID  *uint
	Type       string
	Title      string
	Content    string
	IsAnswered bool
	Answer     string
	AnsweredAt *time.Time
	AnsweredBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate 类型必须合法，标题和内容不能为空
func (i *Inquiry) Validate() error {
	if !ValidType(i.Type) {
		return ErrInvalidType.WithMessagef("无效的咨询类型（%s）", strings.Join(Types, ", "))
	}
	if i.Title == "" || i.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// MarkAnswered 记录答复，重复答复覆盖之前的内容
func (i *Inquiry) MarkAnswered(answer, by string, now time.Time) {
	i.IsAnswered = true
	i.Answer = answer
	i.AnsweredBy = by
	i.AnsweredAt = &now
	i.UpdatedAt = now
}

// ListFilter 查询条件，UserID为0表示全部用户（管理员）
type ListFilter struct {
	UserID     uint
	IsAnswered *bool
	Type       string
	Offset     int
	Limit      int
}

var (
	ErrInquiryNotFound = apperrors.NotFound("咨询不存在")
	ErrInvalidType     = apperrors.BadRequest("无效的咨询类型")
	ErrEmptyContent    = apperrors.Validation("标题和内容不能为空")
	ErrEmptyAnswer     = apperrors.Validation("答复内容不能为空")
	ErrAlreadyAnswered = apperrors.BadRequest("已答复的咨询不能删除")
)

// Repository 咨询仓储接口
type Repository interface {
	Create(ctx context.Context, i *Inquiry) error
	FindByID(ctx context.Context, id uint) (*Inquiry, error)
	List(ctx context.Context, filter ListFilter) ([]*Inquiry, int64, error)
	// Answer 只更新答复相关字段
	Answer(ctx context.Context, i *Inquiry) error
	// DeleteUnanswered 只删除该用户未答复的咨询，已答复返回ErrAlreadyAnswered
	DeleteUnanswered(ctx context.Context, id, userID uint) error
}
