package repository

import "errors"

// ErrNotFound 记录不存在（不视为远程存储故障）
var ErrNotFound = errors.New("record not found")

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Type     string
	Search   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   string
	Status   string
}
