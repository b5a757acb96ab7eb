package models

import (
	"time"

	"github.com/taazabazaar/internal/constants"
)

// Product 商品表（inventory）
type Product struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`              // 主键
	Name      string    `gorm:"type:varchar(200);not null;index" json:"name"`       // 商品名称
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`        // 分类（fruit/vegetable/seasonal/others）
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Stock     Quantity  `gorm:"type:decimal(20,3);not null;default:0" json:"stock"` // 库存（允许小数）
	ImageURL  *string   `gorm:"type:varchar(500)" json:"image_url,omitempty"`       // 图片地址
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "inventory"
}

// StockStatus 返回库存状态标签
func (p Product) StockStatus() string {
	if !p.Stock.IsPositive() {
		return constants.StockStatusOutOfStock
	}
	if p.Stock.LessThan(NewQuantityFromFloat(constants.LowStockThreshold).Decimal) {
		return constants.StockStatusLowStock
	}
	return constants.StockStatusInStock
}

// Clone 返回商品的深拷贝
func (p Product) Clone() Product {
	if p.ImageURL != nil {
		url := *p.ImageURL
		p.ImageURL = &url
	}
	return p
}
