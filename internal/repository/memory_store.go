package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore 进程内回退存储，每次启动都从固定种子数据重新初始化
type MemoryStore struct {
	mu            sync.Mutex
	products      map[string]models.Product
	orders        []models.Order
	notifications []models.Notification
	nextNotifyID  uint
	now           func() time.Time
}

// NewMemoryStore 创建并填充种子数据
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *MemoryStore {
	s := &MemoryStore{
		products:     make(map[string]models.Product),
		nextNotifyID: 1,
		now:          now,
	}
	seededAt := now()
	for _, product := range models.SeedProducts(seededAt) {
		s.products[product.ID] = product
	}
	s.orders = append(s.orders, models.SeedOrders(seededAt)...)
	return s
}

// Products 返回商品仓库视图
func (s *MemoryStore) Products() *MemoryProductRepository {
	return &MemoryProductRepository{store: s}
}

// Orders 返回订单仓库视图
func (s *MemoryStore) Orders() *MemoryOrderRepository {
	return &MemoryOrderRepository{store: s}
}

// Notifications 返回通知仓库视图
func (s *MemoryStore) Notifications() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{store: s}
}

// MemoryProductRepository 内存商品仓库
type MemoryProductRepository struct {
	store *MemoryStore
}

// List 商品列表，按名称排序
func (r *MemoryProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	productType := strings.TrimSpace(filter.Type)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		if productType != "" && product.Type != productType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		products = append(products, product.Clone())
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].ID < products[j].ID
		}
		return products[i].Name < products[j].Name
	})
	return paginate(products, filter.Page, filter.PageSize), nil
}

// GetByID 根据 ID 获取商品，不存在时返回 nil
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cloned := product.Clone()
	return &cloned, nil
}

// Create 创建商品
func (r *MemoryProductRepository) Create(product *models.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	assignProductID(product)
	now := s.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	s.products[product.ID] = product.Clone()
	return nil
}

// Update 更新商品
func (r *MemoryProductRepository) Update(product *models.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = s.now()
	s.products[product.ID] = product.Clone()
	return nil
}

// Delete 删除商品
func (r *MemoryProductRepository) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// CountByType 按分类统计商品数量
func (r *MemoryProductRepository) CountByType() (map[string]int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int64)
	for _, product := range s.products {
		counts[product.Type]++
	}
	return counts, nil
}

// Ping 内存存储始终可用
func (r *MemoryProductRepository) Ping(context.Context) error { return nil }

// MemoryOrderRepository 内存订单仓库
type MemoryOrderRepository struct {
	store *MemoryStore
}

// Create 写入订单并在同一把锁内扣减库存
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	assignOrderID(order)
	now := s.now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	s.orders = append(s.orders, order.Clone())

	for _, item := range order.Items {
		product, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		remaining := product.Stock.Sub(item.Quantity.Decimal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		product.Stock = models.NewQuantity(remaining)
		product.UpdatedAt = now
		s.products[product.ID] = product
	}
	return nil
}

// List 订单列表，按创建时间倒序
func (r *MemoryOrderRepository) List(filter OrderListFilter) ([]models.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := strings.TrimSpace(filter.UserID)
	status := strings.TrimSpace(filter.Status)
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if userID != "" && order.UserID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order.Clone())
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return paginate(orders, filter.Page, filter.PageSize), nil
}

// GetByID 根据 ID 获取订单，不存在时返回 nil
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			cloned := order.Clone()
			return &cloned, nil
		}
	}
	return nil, nil
}

// UpdateStatus 更新订单状态
func (r *MemoryOrderRepository) UpdateStatus(id, status string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = s.now()
			return nil
		}
	}
	return ErrNotFound
}

// Ping 内存存储始终可用
func (r *MemoryOrderRepository) Ping(context.Context) error { return nil }

// MemoryNotificationRepository 内存通知仓库
type MemoryNotificationRepository struct {
	store *MemoryStore
}

// Create 写入通知
func (r *MemoryNotificationRepository) Create(notification *models.Notification) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = s.nextNotifyID
	s.nextNotifyID++
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = s.now()
	}
	s.notifications = append(s.notifications, *notification)
	return nil
}

// ListByUser 用户通知列表，最新在前
func (r *MemoryNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			result = append(result, s.notifications[i])
		}
	}
	return paginate(result, 1, limit), nil
}

// Ping 内存存储始终可用
func (r *MemoryNotificationRepository) Ping(context.Context) error { return nil }

func assignProductID(product *models.Product) {
	if strings.TrimSpace(product.ID) == "" {
		product.ID = uuid.NewString()
	}
}

func assignOrderID(order *models.Order) {
	if strings.TrimSpace(order.ID) == "" {
		order.ID = constants.OrderIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}
