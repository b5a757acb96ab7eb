package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	// Create 写入订单与订单项，并按订单项扣减商品库存
	Create(order *models.Order) error
	List(filter OrderListFilter) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	UpdateStatus(id, status string) error
	Ping(ctx context.Context) error
}

// GormOrderRepository GORM 实现（远程表存储）
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 在同一事务内写入订单、订单项并扣减库存
func (r *GormOrderRepository) Create(order *models.Order) error {
	assignOrderID(order)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		products := NewProductRepository(tx)
		for _, item := range order.Items {
			affected, err := products.decrementStock(item)
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.Warnw("order_stock_product_missing",
					"order_id", order.ID,
					"product_id", item.ProductID,
				)
			}
		}
		return nil
	})
}

// List 订单列表，按创建时间倒序
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, error) {
	query := r.db.Model(&models.Order{}).Preload("Items")
	if userID := strings.TrimSpace(filter.UserID); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID 根据 ID 获取订单，不存在时返回 nil
func (r *GormOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping 对 orders 表做一次轻量探测
func (r *GormOrderRepository) Ping(ctx context.Context) error {
	var ids []string
	return r.db.WithContext(ctx).Model(&models.Order{}).Limit(1).Pluck("id", &ids).Error
}
