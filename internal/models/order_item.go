package models

// OrderItem 订单项表（与商品实时状态解耦的快照）
type OrderItem struct {
	ID          uint     `gorm:"primarykey" json:"-"`                               // 主键
	OrderID     string   `gorm:"type:varchar(64);index;not null" json:"-"`          // 订单ID
	ProductID   string   `gorm:"type:varchar(64);index;not null" json:"product_id"` // 商品ID
	ProductName string   `gorm:"type:varchar(200);not null" json:"product_name"`    // 商品名称快照
	Quantity    Quantity `gorm:"type:decimal(20,3);not null" json:"quantity"`       // 数量
	Price       Money    `gorm:"type:decimal(20,2);not null" json:"price"`          // 单价快照
	Unit        string   `gorm:"type:varchar(20);not null" json:"unit"`             // 单位
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
