package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/taazabazaar/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	CountByType() (map[string]int64, error)
	Ping(ctx context.Context) error
}

// GormProductRepository GORM 实现（远程表存储）
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表，按名称排序
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if productType := strings.TrimSpace(filter.Type); productType != "" {
		query = query.Where("type = ?", productType)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(nameSearchCondition(r.db, "name"), "%"+search+"%")
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品，不存在时返回 nil
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	assignProductID(product)
	return r.db.Create(product).Error
}

// Update 更新商品（包含零值字段）
func (r *GormProductRepository) Update(product *models.Product) error {
	result := r.db.Model(product).
		Select("name", "type", "price", "stock", "image_url", "updated_at").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByType 按分类统计商品数量
func (r *GormProductRepository) CountByType() (map[string]int64, error) {
	var rows []struct {
		Type  string
		Total int64
	}
	if err := r.db.Model(&models.Product{}).
		Select("type, COUNT(*) AS total").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Total
	}
	return counts, nil
}

// Ping 对 inventory 表做一次轻量探测
func (r *GormProductRepository) Ping(ctx context.Context) error {
	var ids []string
	return r.db.WithContext(ctx).Model(&models.Product{}).Limit(1).Pluck("id", &ids).Error
}

// decrementStock 扣减库存，最低为 0
func (r *GormProductRepository) decrementStock(item models.OrderItem) (int64, error) {
	qty := item.Quantity.Decimal
	result := r.db.Model(&models.Product{}).
		Where("id = ?", item.ProductID).
		Update("stock", gorm.Expr(stockDecrementExpr(), qty, qty))
	return result.RowsAffected, result.Error
}
