package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID        string      `gorm:"primarykey;type:varchar(64)" json:"id"`                   // 主键
	UserID    string      `gorm:"type:varchar(64);index;not null" json:"user_id"`          // 下单用户
	Location  string      `gorm:"type:varchar(500);not null" json:"location"`              // 配送地址
	TotalCost Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 订单总额
	Status    string      `gorm:"type:varchar(32);index;not null" json:"status"`           // 订单状态
	CreatedAt time.Time   `gorm:"index" json:"timestamp"`                                  // 下单时间
	UpdatedAt time.Time   `json:"-"`                                                       // 更新时间
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`                         // 订单项快照
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// Clone 返回订单的深拷贝
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}
