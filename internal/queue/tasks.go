package queue

import (
	"encoding/json"
	"strings"

	"github.com/taazabazaar/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderStatusNotification 订单状态通知任务
const TaskOrderStatusNotification = constants.TaskOrderStatusNotification

// OrderStatusNotificationPayload 订单状态通知任务载荷
type OrderStatusNotificationPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

// Valid 载荷是否完整
func (p OrderStatusNotificationPayload) Valid() bool {
	return strings.TrimSpace(p.OrderID) != "" && strings.TrimSpace(p.Status) != ""
}

// NewOrderStatusNotificationTask 创建订单状态通知任务
func NewOrderStatusNotificationTask(payload OrderStatusNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotification, body), nil
}

// ParseOrderStatusNotificationPayload 解析任务载荷
func ParseOrderStatusNotificationPayload(task *asynq.Task) (OrderStatusNotificationPayload, error) {
	var payload OrderStatusNotificationPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
