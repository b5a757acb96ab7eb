package worker

import (
	"context"
	"fmt"

	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/queue"

	"github.com/hibiken/asynq"
)

// Notifier 写入订单状态通知
type Notifier interface {
	Notify(orderID, userID, status string) (*models.Notification, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	Notifications Notifier
}

// NewConsumer 创建消费者
func NewConsumer(notifications Notifier) *Consumer {
	return &Consumer{Notifications: notifications}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotification, c.handleOrderStatusNotification)
}

func (c *Consumer) handleOrderStatusNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusNotificationPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_notification_unmarshal_failed", "error", err)
		// 载荷损坏时重试没有意义
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if !payload.Valid() {
		logger.Debugw("worker_order_status_notification_skip_invalid_payload", "order_id", payload.OrderID, "status", payload.Status)
		return nil
	}
	if c.Notifications == nil {
		logger.Warnw("worker_order_status_notification_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if _, err := c.Notifications.Notify(payload.OrderID, payload.UserID, payload.Status); err != nil {
		logger.Warnw("worker_order_status_notification_failed",
			"order_id", payload.OrderID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_order_status_notification_done", "order_id", payload.OrderID, "status", payload.Status)
	return nil
}
