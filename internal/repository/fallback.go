package repository

import (
	"context"
	"errors"

	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"
)

// withFallback 先在远程存储执行，失败后在内存存储重试同一操作。
// ErrNotFound 属于正常结果，不触发回退。
func withFallback[T any](op string, remote, local func() (T, error)) (T, error) {
	result, err := remote()
	if err == nil || errors.Is(err, ErrNotFound) {
		return result, err
	}
	logger.Warnw("remote_store_failed", "op", op, "error", err)
	return local()
}

func withFallbackErr(op string, remote, local func() error) error {
	_, err := withFallback(op, func() (struct{}, error) {
		return struct{}{}, remote()
	}, func() (struct{}, error) {
		return struct{}{}, local()
	})
	return err
}

// FallbackProductRepository 远程商品仓库 + 内存回退
type FallbackProductRepository struct {
	primary  ProductRepository
	fallback ProductRepository
}

// NewFallbackProductRepository 创建带回退的商品仓库
func NewFallbackProductRepository(primary, fallback ProductRepository) *FallbackProductRepository {
	return &FallbackProductRepository{primary: primary, fallback: fallback}
}

func (r *FallbackProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	return withFallback("product_list",
		func() ([]models.Product, error) { return r.primary.List(filter) },
		func() ([]models.Product, error) { return r.fallback.List(filter) },
	)
}

func (r *FallbackProductRepository) GetByID(id string) (*models.Product, error) {
	return withFallback("product_get",
		func() (*models.Product, error) { return r.primary.GetByID(id) },
		func() (*models.Product, error) { return r.fallback.GetByID(id) },
	)
}

func (r *FallbackProductRepository) Create(product *models.Product) error {
	return withFallbackErr("product_create",
		func() error { return r.primary.Create(product) },
		func() error { return r.fallback.Create(product) },
	)
}

func (r *FallbackProductRepository) Update(product *models.Product) error {
	return withFallbackErr("product_update",
		func() error { return r.primary.Update(product) },
		func() error { return r.fallback.Update(product) },
	)
}

func (r *FallbackProductRepository) Delete(id string) error {
	return withFallbackErr("product_delete",
		func() error { return r.primary.Delete(id) },
		func() error { return r.fallback.Delete(id) },
	)
}

func (r *FallbackProductRepository) CountByType() (map[string]int64, error) {
	return withFallback("product_count_by_type",
		func() (map[string]int64, error) { return r.primary.CountByType() },
		func() (map[string]int64, error) { return r.fallback.CountByType() },
	)
}

// Ping 回退仓库只要内存存储可用即视为可用
func (r *FallbackProductRepository) Ping(ctx context.Context) error {
	return withFallbackErr("product_ping",
		func() error { return r.primary.Ping(ctx) },
		func() error { return r.fallback.Ping(ctx) },
	)
}

// FallbackOrderRepository 远程订单仓库 + 内存回退
type FallbackOrderRepository struct {
	primary  OrderRepository
	fallback OrderRepository
}

// NewFallbackOrderRepository 创建带回退的订单仓库
func NewFallbackOrderRepository(primary, fallback OrderRepository) *FallbackOrderRepository {
	return &FallbackOrderRepository{primary: primary, fallback: fallback}
}

func (r *FallbackOrderRepository) Create(order *models.Order) error {
	return withFallbackErr("order_create",
		func() error { return r.primary.Create(order) },
		func() error { return r.fallback.Create(order) },
	)
}

func (r *FallbackOrderRepository) List(filter OrderListFilter) ([]models.Order, error) {
	return withFallback("order_list",
		func() ([]models.Order, error) { return r.primary.List(filter) },
		func() ([]models.Order, error) { return r.fallback.List(filter) },
	)
}

func (r *FallbackOrderRepository) GetByID(id string) (*models.Order, error) {
	return withFallback("order_get",
		func() (*models.Order, error) { return r.primary.GetByID(id) },
		func() (*models.Order, error) { return r.fallback.GetByID(id) },
	)
}

func (r *FallbackOrderRepository) UpdateStatus(id, status string) error {
	return withFallbackErr("order_update_status",
		func() error { return r.primary.UpdateStatus(id, status) },
		func() error { return r.fallback.UpdateStatus(id, status) },
	)
}

func (r *FallbackOrderRepository) Ping(ctx context.Context) error {
	return withFallbackErr("order_ping",
		func() error { return r.primary.Ping(ctx) },
		func() error { return r.fallback.Ping(ctx) },
	)
}

// FallbackNotificationRepository 远程通知仓库 + 内存回退
type FallbackNotificationRepository struct {
	primary  NotificationRepository
	fallback NotificationRepository
}

// NewFallbackNotificationRepository 创建带回退的通知仓库
func NewFallbackNotificationRepository(primary, fallback NotificationRepository) *FallbackNotificationRepository {
	return &FallbackNotificationRepository{primary: primary, fallback: fallback}
}

func (r *FallbackNotificationRepository) Create(notification *models.Notification) error {
	return withFallbackErr("notification_create",
		func() error { return r.primary.Create(notification) },
		func() error { return r.fallback.Create(notification) },
	)
}

func (r *FallbackNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, error) {
	return withFallback("notification_list",
		func() ([]models.Notification, error) { return r.primary.ListByUser(userID, limit) },
		func() ([]models.Notification, error) { return r.fallback.ListByUser(userID, limit) },
	)
}

func (r *FallbackNotificationRepository) Ping(ctx context.Context) error {
	return withFallbackErr("notification_ping",
		func() error { return r.primary.Ping(ctx) },
		func() error { return r.fallback.Ping(ctx) },
	)
}
