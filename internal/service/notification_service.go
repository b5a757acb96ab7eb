package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/queue"
	"github.com/taazabazaar/internal/repository"
)

const defaultNotificationLimit = 50

// notificationTemplates 订单状态通知文案，%s 为订单号
var notificationTemplates = map[string]string{
	constants.OrderStatusPending:        "Your order %s has been received and is awaiting confirmation.",
	constants.OrderStatusConfirmed:      "Your order %s has been confirmed.",
	constants.OrderStatusPreparing:      "Your order %s is being prepared.",
	constants.OrderStatusOutForDelivery: "Your order %s is out for delivery.",
	constants.OrderStatusDelivered:      "Your order %s has been delivered. Enjoy your fresh groceries!",
	constants.OrderStatusCancelled:      "Your order %s has been cancelled.",
}

// NotificationMessage 渲染订单状态通知文案
func NotificationMessage(orderID, status string) string {
	if tpl, ok := notificationTemplates[status]; ok {
		return fmt.Sprintf(tpl, orderID)
	}
	return fmt.Sprintf(constants.NotificationMessageUnknownFmt, orderID, status)
}

// NotificationService 订单通知服务
type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Notify 写入一条状态通知
func (s *NotificationService) Notify(orderID, userID, status string) (*models.Notification, error) {
	orderID = strings.TrimSpace(orderID)
	status = strings.TrimSpace(status)
	if orderID == "" || status == "" {
		return nil, invalid("order id and status are required")
	}
	notification := &models.Notification{
		OrderID:   orderID,
		UserID:    strings.TrimSpace(userID),
		Status:    status,
		Message:   NotificationMessage(orderID, status),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser 用户通知列表
func (s *NotificationService) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	notifications, err := s.repo.ListByUser(userID, limit)
	if err != nil {
		return nil, ErrNotificationFetchFailed
	}
	return notifications, nil
}

// NotificationDispatcher 订单状态通知分发：启用队列时异步入队，否则直接写入
type NotificationDispatcher struct {
	queueClient   *queue.Client
	notifications *NotificationService
}

// NewNotificationDispatcher 创建通知分发器
func NewNotificationDispatcher(queueClient *queue.Client, notifications *NotificationService) *NotificationDispatcher {
	return &NotificationDispatcher{queueClient: queueClient, notifications: notifications}
}

// Dispatch 分发订单状态通知
func (d *NotificationDispatcher) Dispatch(_ context.Context, order *models.Order) error {
	if d == nil || order == nil {
		return nil
	}
	if d.queueClient.Enabled() {
		return d.queueClient.EnqueueOrderStatusNotification(queue.OrderStatusNotificationPayload{
			OrderID: order.ID,
			UserID:  order.UserID,
			Status:  order.Status,
		})
	}
	if d.notifications == nil {
		logger.Debugw("order_status_notify_skip_no_service", "order_id", order.ID)
		return nil
	}
	_, err := d.notifications.Notify(order.ID, order.UserID, order.Status)
	return err
}
