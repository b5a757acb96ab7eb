// Package cart 实现购物车的纯状态转换（reducer）。
//
// Reduce 永远不会修改传入的状态：每个有效动作都会返回一个新的 *Cart，
// 未知动作原样返回同一个指针，方便上层按引用判断是否发生变化。
package cart

import (
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"

	"github.com/shopspring/decimal"
)

// LineItem 购物车行项目，以商品 ID 作为唯一标识
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    models.Money    `json:"price"`
	Unit     string          `json:"unit"`
	Image    *string         `json:"image,omitempty"`
	Quantity models.Quantity `json:"quantity"`
}

// Cart 购物车状态，Total 与ItemCount 为派生值
type Cart struct {
	Items     []LineItem      `json:"items"`
	Total     models.Money    `json:"total"`
	ItemCount models.Quantity `json:"item_count"`
}

// Empty 返回空购物车
func Empty() *Cart {
	return &Cart{Items: []LineItem{}}
}

// IsEmpty 判断购物车是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Find 按商品 ID 查找行项目
func (c *Cart) Find(id string) (LineItem, bool) {
	if c == nil {
		return LineItem{}, false
	}
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// Snapshot 返回行项目副本
func (c *Cart) Snapshot() []LineItem {
	if c == nil {
		return []LineItem{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// Derive 由行项目列表计算购物车（总价与数量每次全量重算）
func Derive(items []LineItem) *Cart {
	total := decimal.Zero
	count := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal.Mul(item.Quantity.Decimal))
		count = count.Add(item.Quantity.Decimal)
	}
	if items == nil {
		items = []LineItem{}
	}
	return &Cart{
		Items:     items,
		Total:     models.NewMoneyFromDecimal(total),
		ItemCount: models.NewQuantity(count),
	}
}

// NewLineItem 由商品构建行项目快照
func NewLineItem(product models.Product) LineItem {
	item := LineItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Unit:  constants.DefaultUnit,
	}
	if product.ImageURL != nil {
		image := *product.ImageURL
		item.Image = &image
	}
	return item
}
