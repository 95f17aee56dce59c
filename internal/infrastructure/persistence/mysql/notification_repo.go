package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/notification"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
		Link:    n.Link,
		IsRead:  n.IsRead,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建通知失败")
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

func (r *notificationRepository) List(ctx context.Context, filter notification.ListFilter) ([]*notification.Notification, int64, error) {
	query := dbFrom(ctx, r.db).Model(&NotificationModel{}).Where("user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询通知总数失败")
	}

	var models []NotificationModel
	if err := pageQuery(query.Order("created_at DESC").Order("id DESC"), filter.Offset, filter.Limit).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询通知失败")
	}

	result := make([]*notification.Notification, len(models))
	for i, m := range models {
		result[i] = &notification.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Type:      m.Type,
			Title:     m.Title,
			Message:   m.Message,
			Link:      m.Link,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt,
		}
	}
	return result, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "查询未读通知失败")
	}
	return count, nil
}

// MarkRead 已读的通知重复标记不报错
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	db := dbFrom(ctx, r.db)
	var count int64
	if err := db.Model(&NotificationModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询通知失败")
	}
	if count == 0 {
		return notification.ErrNotificationNotFound
	}
	if err := db.Model(&NotificationModel{}).Where("id = ?", id).Update("is_read", true).Error; err != nil {
		return apperrors.Wrap(err, "更新通知失败")
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "更新通知失败")
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uint) error {
	result := dbFrom(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&NotificationModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除通知失败")
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}
