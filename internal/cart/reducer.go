package cart

import (
	"github.com/taazabazaar/internal/models"

	"github.com/shopspring/decimal"
)

// Action 购物车动作
type Action interface {
	Kind() string
}

// AddItem 添加商品；已存在则累加数量。Quantity 非正数时按 1 处理
type AddItem struct {
	Item     LineItem
	Quantity decimal.Decimal
}

// RemoveItem 删除商品
type RemoveItem struct {
	ID string
}

// UpdateQuantity 设置数量；小于等于 0 时删除
type UpdateQuantity struct {
	ID       string
	Quantity decimal.Decimal
}

// Clear 清空购物车
type Clear struct{}

// Load 整体替换行项目（用于从持久化存储恢复）
type Load struct {
	Items []LineItem
}

func (AddItem) Kind() string        { return "ADD_ITEM" }
func (RemoveItem) Kind() string     { return "REMOVE_ITEM" }
func (UpdateQuantity) Kind() string { return "UPDATE_QUANTITY" }
func (Clear) Kind() string          { return "CLEAR_CART" }
func (Load) Kind() string           { return "LOAD_CART" }

// DefaultQuantity 添加商品的默认数量
var DefaultQuantity = decimal.NewFromInt(1)

// Reduce 购物车状态转换
func Reduce(state *Cart, action Action) *Cart {
	if state == nil {
		state = Empty()
	}
	switch a := action.(type) {
	case AddItem:
		return add(state, a)
	case RemoveItem:
		return remove(state, a.ID)
	case UpdateQuantity:
		return update(state, a.ID, a.Quantity)
	case Clear:
		return Empty()
	case Load:
		return load(a.Items)
	default:
		return state
	}
}

func add(state *Cart, a AddItem) *Cart {
	quantity := a.Quantity
	if !quantity.IsPositive() {
		quantity = DefaultQuantity
	}
	items := make([]LineItem, 0, len(state.Items)+1)
	found := false
	for _, item := range state.Items {
		if item.ID == a.Item.ID {
			item.Quantity = models.NewQuantity(item.Quantity.Add(quantity))
			found = true
		}
		items = append(items, item)
	}
	if !found {
		item := a.Item
		item.Quantity = models.NewQuantity(quantity)
		items = append(items, item)
	}
	return Derive(items)
}

func remove(state *Cart, id string) *Cart {
	items := make([]LineItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return Derive(items)
}

func update(state *Cart, id string, quantity decimal.Decimal) *Cart {
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	items := make([]LineItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID == id {
			item.Quantity = models.NewQuantity(quantity)
		}
		if !item.Quantity.IsPositive() {
			continue
		}
		items = append(items, item)
	}
	return Derive(items)
}

func load(source []LineItem) *Cart {
	items := make([]LineItem, 0, len(source))
	for _, item := range source {
		if !item.Quantity.IsPositive() {
			continue
		}
		items = append(items, item)
	}
	return Derive(items)
}
