package repository

import (
	"context"

	"github.com/taazabazaar/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 订单通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID string, limit int) ([]models.Notification, error)
	Ping(ctx context.Context) error
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create 写入通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByUser 用户通知列表，最新在前
func (r *GormNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, error) {
	query := applyPagination(r.db.Where("user_id = ?", userID), 1, limit)
	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Ping 对 notifications 表做一次轻量探测
func (r *GormNotificationRepository) Ping(ctx context.Context) error {
	var ids []uint
	return r.db.WithContext(ctx).Model(&models.Notification{}).Limit(1).Pluck("id", &ids).Error
}
