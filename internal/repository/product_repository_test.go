package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createProduct(t *testing.T, repo ProductRepository, id, name, productType string, price, stock int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:    id,
		Name:  name,
		Type:  productType,
		Price: models.NewMoney(price),
		Stock: models.NewQuantity(decimal.NewFromInt(stock)),
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGormProductListFilterAndOrder(t *testing.T) {
	repo := NewProductRepository(setupSQLiteDB(t))
	createProduct(t, repo, "p1", "Fresh Tomatoes", constants.CategoryVegetable, 40, 50)
	createProduct(t, repo, "p2", "Apples", constants.CategoryFruit, 120, 25)
	createProduct(t, repo, "p3", "Cherry Tomatoes", constants.CategoryVegetable, 90, 5)

	all, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Apples" || all[2].Name != "Fresh Tomatoes" {
		t.Fatalf("products should be ordered by name: %+v", all)
	}

	vegetables, err := repo.List(ProductListFilter{Type: constants.CategoryVegetable})
	if err != nil {
		t.Fatalf("list by type failed: %v", err)
	}
	if len(vegetables) != 2 {
		t.Fatalf("vegetables want 2 got %d", len(vegetables))
	}

	search, err := repo.List(ProductListFilter{Search: "tomato"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(search) != 2 {
		t.Fatalf("search should be case-insensitive, got %d", len(search))
	}

	page, err := repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if len(page) != 1 || page[0].ID != "p1" {
		t.Fatalf("unexpected second page: %+v", page)
	}
}

func TestGormProductCRUD(t *testing.T) {
	repo := NewProductRepository(setupSQLiteDB(t))
	product := createProduct(t, repo, "", "Bell Peppers", constants.CategoryVegetable, 80, 20)
	if product.ID == "" {
		t.Fatalf("create should assign an id")
	}

	product.Stock = models.NewQuantity(decimal.Zero)
	product.ImageURL = nil
	product.Price = models.NewMoneyFromDecimal(decimal.RequireFromString("85.5"))
	if err := repo.Update(product); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Stock.IsZero() || got.Price.String() != "85.50" {
		t.Fatalf("zero stock should be persisted: %+v", got)
	}

	if err := repo.Update(&models.Product{ID: "missing", Name: "x", Type: constants.CategoryFruit}); err != ErrNotFound {
		t.Fatalf("update missing want ErrNotFound got %v", err)
	}
	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(product.ID); err != ErrNotFound {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}
	missing, err := repo.GetByID(product.ID)
	if err != nil || missing != nil {
		t.Fatalf("deleted product should be absent, got=%v err=%v", missing, err)
	}
}

func TestGormProductCountByTypeAndPing(t *testing.T) {
	repo := NewProductRepository(setupSQLiteDB(t))
	createProduct(t, repo, "a", "A", constants.CategoryFruit, 10, 1)
	createProduct(t, repo, "b", "B", constants.CategoryFruit, 10, 1)
	createProduct(t, repo, "c", "C", constants.CategorySeasonal, 10, 1)

	counts, err := repo.CountByType()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts[constants.CategoryFruit] != 2 || counts[constants.CategorySeasonal] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := setupSQLiteDB(t)
	now := time.Now()
	created, err := models.SeedCatalog(db, now)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if created != len(models.SeedProducts(now)) {
		t.Fatalf("seed created want %d got %d", len(models.SeedProducts(now)), created)
	}
	again, err := models.SeedCatalog(db, now)
	if err != nil || again != 0 {
		t.Fatalf("second seed should create nothing, got=%d err=%v", again, err)
	}
}
