package models

import "time"

// Notification 订单状态通知记录
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`                            // 主键
	OrderID   string    `gorm:"type:varchar(64);index;not null" json:"order_id"` // 订单ID
	UserID    string    `gorm:"type:varchar(64);index;not null" json:"user_id"`  // 接收用户
	Status    string    `gorm:"type:varchar(32);not null" json:"status"`         // 目标状态
	Message   string    `gorm:"type:varchar(500);not null" json:"message"`       // 通知内容
	CreatedAt time.Time `gorm:"index" json:"created_at"`                         // 创建时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
