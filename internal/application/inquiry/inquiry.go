package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/domain/inquiry"
	"github.com/xiebiao/mall/internal/domain/notification"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/domain/user"
)

// DefaultAnsweredBy 管理员没有填写姓名时的答复人
const DefaultAnsweredBy = "관리자"

// InquiryDTO 咨询
type InquiryDTO struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"userId"`
	ProductID  *uint      `json:"productId,omitempty"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsAnswered bool       `json:"isAnswered"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	AnsweredBy string     `json:"answeredBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ListResponse 咨询列表
type ListResponse struct {
	Inquiries []InquiryDTO `json:"inquiries"`
	Total     int64        `json:"total"`
}

// CreateRequest 提交咨询
type CreateRequest struct {
	UserID    uint
	ProductID *uint
	Type      string
	Title     string
	Content   string
}

// AdminListRequest 管理员查询，IsAnswered为nil表示不过滤
type AdminListRequest struct {
	IsAnswered *bool
	Type       string
	Limit      int
	Offset     int
}

// InquiryUseCase 1:1咨询
type InquiryUseCase struct {
	repo        inquiry.Repository
	productRepo product.Repository
	userRepo    user.Repository
	notifyRepo  notification.Repository
	log         *zap.Logger
	now         func() time.Time
}

// NewInquiryUseCase 创建用例
func NewInquiryUseCase(repo inquiry.Repository, productRepo product.Repository, userRepo user.Repository,
	notifyRepo notification.Repository, log *zap.Logger) *InquiryUseCase {
	return &InquiryUseCase{
		repo:        repo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifyRepo:  notifyRepo,
		log:         log,
		now:         time.Now,
	}
}

// Create 提交咨询，商品咨询时商品必须存在
func (uc *InquiryUseCase) Create(ctx context.Context, req CreateRequest) (*InquiryDTO, error) {
	now := uc.now()
	i := &inquiry.Inquiry{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Type:      strings.TrimSpace(req.Type),
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if i.ProductID != nil {
		if _, err := uc.productRepo.FindByID(ctx, *i.ProductID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	uc.log.Info("咨询已提交", zap.Uint("inquiry_id", i.ID), zap.Uint("user_id", i.UserID), zap.String("type", i.Type))
	dto := toInquiryDTO(i)
	return &dto, nil
}

// ListMine 当前用户的咨询，limit默认20，最大100
func (uc *InquiryUseCase) ListMine(ctx context.Context, userID uint, limit, offset int) (*ListResponse, error) {
	return uc.list(ctx, inquiry.ListFilter{UserID: userID, Limit: limit, Offset: offset})
}

// Get 只能查看自己的咨询，他人的按不存在处理
func (uc *InquiryUseCase) Get(ctx context.Context, userID, id uint) (*InquiryDTO, error) {
	i, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.UserID != userID {
		return nil, inquiry.ErrInquiryNotFound
	}
	dto := toInquiryDTO(i)
	return &dto, nil
}

// Delete 只能删除自己未答复的咨询
func (uc *InquiryUseCase) Delete(ctx context.Context, userID, id uint) error {
	if err := uc.repo.DeleteUnanswered(ctx, id, userID); err != nil {
		return err
	}
	uc.log.Info("咨询已删除", zap.Uint("inquiry_id", id), zap.Uint("user_id", userID))
	return nil
}

// AdminList 全部用户的咨询
func (uc *InquiryUseCase) AdminList(ctx context.Context, req AdminListRequest) (*ListResponse, error) {
	t := strings.TrimSpace(req.Type)
	if t != "" && !inquiry.ValidType(t) {
		return nil, inquiry.ErrInvalidType.WithMessagef("无效的咨询类型（%s）", strings.Join(inquiry.Types, ", "))
	}
	return uc.list(ctx, inquiry.ListFilter{IsAnswered: req.IsAnswered, Type: t, Limit: req.Limit, Offset: req.Offset})
}

// Answer 管理员答复，再次答复覆盖原答复，并给提问用户发站内通知
func (uc *InquiryUseCase) Answer(ctx context.Context, adminID, id uint, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return inquiry.ErrEmptyAnswer
	}
	i, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	i.MarkAnswered(answer, uc.answeredBy(ctx, adminID), uc.now())
	if err := uc.repo.Answer(ctx, i); err != nil {
		return err
	}
	uc.log.Info("咨询已答复", zap.Uint("inquiry_id", i.ID), zap.String("answered_by", i.AnsweredBy))

	// 通知失败不影响答复结果
	n := &notification.Notification{
		UserID:    i.UserID,
		Type:      notification.TypeSystem,
		Title:     "咨询已答复",
		Message:   fmt.Sprintf("您的咨询「%s」已收到答复。", i.Title),
		Link:      fmt.Sprintf("/inquiries/%d", i.ID),
		CreatedAt: uc.now(),
	}
	if err := uc.notifyRepo.Create(ctx, n); err != nil {
		uc.log.Warn("咨询答复通知创建失败", zap.Uint("inquiry_id", i.ID), zap.Error(err))
	}
	return nil
}

func (uc *InquiryUseCase) answeredBy(ctx context.Context, adminID uint) string {
	admin, err := uc.userRepo.FindByID(ctx, adminID)
	if err != nil || admin.Name == "" {
		return DefaultAnsweredBy
	}
	return admin.Name
}

func (uc *InquiryUseCase) list(ctx context.Context, filter inquiry.ListFilter) (*ListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]InquiryDTO, len(items))
	for idx, i := range items {
		out[idx] = toInquiryDTO(i)
	}
	return &ListResponse{Inquiries: out, Total: total}, nil
}

func toInquiryDTO(i *inquiry.Inquiry) InquiryDTO {
	return InquiryDTO{
		ID:         i.ID,
		UserID:     i.UserID,
		ProductID:  i.ProductID,
		Type:       i.Type,
		Title:      i.Title,
		Content:    i.Content,
		IsAnswered: i.IsAnswered,
		Answer:     i.Answer,
		AnsweredAt: i.AnsweredAt,
		AnsweredBy: i.AnsweredBy,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
