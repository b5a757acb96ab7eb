//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Notification{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresConcurrentOrdersDecrementStock(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)
	createProduct(t, products, "1", "Fresh Tomatoes", constants.CategoryVegetable, 40, 50)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- orders.Create(newTestOrder("9876543210", time.Now(), orderItem("1", "1.5", 40)))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	tomatoes, err := products.GetByID("1")
	if err != nil || tomatoes == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if !tomatoes.Stock.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("stock want 35 got %s", tomatoes.Stock.String())
	}
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	products := NewProductRepository(db)
	createProduct(t, products, "1", "Fresh Tomatoes", constants.CategoryVegetable, 40, 50)
	createProduct(t, products, "2", "Sweet Mangoes", constants.CategoryFruit, 150, 30)

	found, err := products.List(ProductListFilter{Search: "TOMATO"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != "1" {
		t.Fatalf("unexpected search result: %+v", found)
	}
	if err := products.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestPostgresOrderStatusAndNotifications(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	orders := NewOrderRepository(db)
	notifications := NewNotificationRepository(db)

	order := newTestOrder("9876543210", time.Now(), orderItem("1", "2", 40))
	if err := orders.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := orders.UpdateStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if err := orders.UpdateStatus("order_missing", constants.OrderStatusConfirmed); err != ErrNotFound {
		t.Fatalf("missing order should return ErrNotFound, got %v", err)
	}

	if err := notifications.Create(&models.Notification{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  constants.OrderStatusConfirmed,
		Message: "Your order has been confirmed.",
	}); err != nil {
		t.Fatalf("create notification failed: %v", err)
	}
	list, err := notifications.ListByUser(order.UserID, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("list notifications failed: %v (%d)", err, len(list))
	}
}
