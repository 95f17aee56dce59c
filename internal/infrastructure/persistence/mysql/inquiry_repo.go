package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/inquiry"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建咨询仓储
func NewInquiryRepository(db *gorm.DB) inquiry.Repository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, i *inquiry.Inquiry) error {
	model := toInquiryModel(i)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建咨询失败")
	}
	i.ID = model.ID
	i.CreatedAt = model.CreatedAt
	i.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uint) (*inquiry.Inquiry, error) {
	var model InquiryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inquiry.ErrInquiryNotFound
		}
		return nil, apperrors.Wrap(err, "查询咨询失败")
	}
	return toInquiryEntity(&model), nil
}

func (r *inquiryRepository) List(ctx context.Context, filter inquiry.ListFilter) ([]*inquiry.Inquiry, int64, error) {
	query := dbFrom(ctx, r.db).Model(&InquiryModel{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.IsAnswered != nil {
		query = query.Where("is_answered = ?", *filter.IsAnswered)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询咨询总数失败")
	}

	var models []InquiryModel
	if err := pageQuery(query.Order("created_at DESC").Order("id DESC"), filter.Offset, filter.Limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询咨询失败")
	}
	result := make([]*inquiry.Inquiry, len(models))
	for i := range models {
		result[i] = toInquiryEntity(&models[i])
	}
	return result, total, nil
}

func (r *inquiryRepository) Answer(ctx context.Context, i *inquiry.Inquiry) error {
	result := dbFrom(ctx, r.db).Model(&InquiryModel{}).Where("id = ?", i.ID).
		Updates(map[string]interface{}{
			"is_answered": true,
			"answer":      i.Answer,
			"answered_at": i.AnsweredAt,
			"answered_by": i.AnsweredBy,
			"updated_at":  i.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "答复咨询失败")
	}
	if result.RowsAffected == 0 {
		return inquiry.ErrInquiryNotFound
	}
	return nil
}

// DeleteUnanswered 条件删除，答复和删除并发时不会删掉已答复的咨询
func (r *inquiryRepository) DeleteUnanswered(ctx context.Context, id, userID uint) error {
	db := dbFrom(ctx, r.db)
	result := db.Where("id = ? AND user_id = ? AND is_answered = ?", id, userID, false).Delete(&InquiryModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除咨询失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 未删除任何行：区分不存在和已答复
	var model InquiryModel
	if err := db.Select("id", "user_id", "is_answered").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inquiry.ErrInquiryNotFound
		}
		return apperrors.Wrap(err, "查询咨询失败")
	}
	if model.UserID != userID {
		return inquiry.ErrInquiryNotFound
	}
	return inquiry.ErrAlreadyAnswered
}

func toInquiryModel(i *inquiry.Inquiry) *InquiryModel {
	return &InquiryModel{
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

func toInquiryEntity(m *InquiryModel) *inquiry.Inquiry {
	return &inquiry.Inquiry{
		ID:         m.ID,
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Title:      m.Title,
		Content:    m.Content,
		IsAnswered: m.IsAnswered,
		Answer:     m.Answer,
		AnsweredAt: m.AnsweredAt,
		AnsweredBy: m.AnsweredBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
