package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput 商品创建/更新输入（价格与库存以字符串接收，保留原始精度）
type ProductInput struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=fruit vegetable seasonal others"`
	Price    string `json:"price" validate:"required,numeric"`
	Stock    string `json:"stock" validate:"required,numeric"`
	ImageURL string `json:"image_url"`
}

// Category 分类及其商品数量
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ProductView 商品 + 库存状态
type ProductView struct {
	models.Product
	StockStatus string `json:"stock_status"`
}

// Unsubscribe 取消订阅（当前为空操作）
type Unsubscribe func()

var categoryMeta = map[string]struct{ id, name string }{
	constants.CategorySeasonal:  {"seasonal", "Seasonal"},
	constants.CategoryFruit:     {"fruits", "Fruits"},
	constants.CategoryVegetable: {"vegetables", "Vegetables"},
	constants.CategoryOthers:    {"others", "Others"},
}

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo, now: time.Now}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]ProductView, error) {
	if categoryType, ok := CategoryTypeByID(filter.Type); ok {
		filter.Type = categoryType
	}
	products, err := s.repo.List(filter)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	return toProductViews(products), nil
}

// FreshPicks 有库存的商品，最多 limit 个
func (s *ProductService) FreshPicks(limit int) ([]ProductView, error) {
	products, err := s.repo.List(repository.ProductListFilter{})
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	picks := make([]models.Product, 0, limit)
	for _, product := range products {
		if limit > 0 && len(picks) >= limit {
			break
		}
		if product.Stock.IsPositive() {
			picks = append(picks, product)
		}
	}
	return toProductViews(picks), nil
}

// Get 商品详情
func (s *ProductService) Get(id string) (*ProductView, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	view := toProductView(*product)
	return &view, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	now := s.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id string, input ProductInput) (*models.Product, error) {
	existing, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = s.now()
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	logger.Infow("product_updated", "product_id", product.ID)
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id string) error {
	if err := s.repo.Delete(strings.TrimSpace(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	logger.Infow("product_deleted", "product_id", id)
	return nil
}

// Categories 固定分类列表及商品数量
func (s *ProductService) Categories() ([]Category, error) {
	counts, err := s.repo.CountByType()
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	order := []string{constants.CategorySeasonal, constants.CategoryFruit, constants.CategoryVegetable, constants.CategoryOthers}
	categories := make([]Category, 0, len(order))
	for _, categoryType := range order {
		meta := categoryMeta[categoryType]
		categories = append(categories, Category{
			ID:    meta.id,
			Name:  meta.name,
			Type:  categoryType,
			Count: counts[categoryType],
		})
	}
	return categories, nil
}

// Subscribe 立即拉取一次并回调，不维持长连接
func (s *ProductService) Subscribe(_ context.Context, filter repository.ProductListFilter, callback func([]ProductView)) (Unsubscribe, error) {
	products, err := s.List(filter)
	if err != nil {
		return func() {}, err
	}
	if callback != nil {
		callback(products)
	}
	return func() {}, nil
}

// CategoryTypeByID 分类 ID（如 fruits）转换为商品类型；本身就是类型时原样返回
func CategoryTypeByID(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for categoryType, meta := range categoryMeta {
		if id == meta.id || id == categoryType {
			return categoryType, true
		}
	}
	return "", false
}

func buildProduct(input ProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Price = strings.TrimSpace(input.Price)
	input.Stock = strings.TrimSpace(input.Stock)
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, invalid("price must be a number")
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return nil, invalid("price must be greater than 0")
	}
	stock, err := decimal.NewFromString(input.Stock)
	if err != nil {
		return nil, invalid("stock must be a number")
	}
	if stock.IsNegative() {
		return nil, invalid("stock must not be negative")
	}
	productType := input.Type
	if productType == "" {
		productType = constants.CategoryVegetable
	}
	product := &models.Product{
		Name:  input.Name,
		Type:  productType,
		Price: models.NewMoneyFromDecimal(price),
		Stock: models.NewQuantity(stock),
	}
	if image := strings.TrimSpace(input.ImageURL); image != "" {
		product.ImageURL = &image
	}
	return product, nil
}

func toProductView(product models.Product) ProductView {
	return ProductView{Product: product, StockStatus: product.StockStatus()}
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product))
	}
	return views
}
