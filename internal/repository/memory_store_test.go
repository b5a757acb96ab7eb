package repository

import (
	"testing"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"

	"github.com/shopspring/decimal"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestMemoryStoreSeedsOnStart(t *testing.T) {
	store := NewMemoryStore()
	products, err := store.Products().List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != len(models.SeedProducts(time.Now())) {
		t.Fatalf("unexpected seed size: %d", len(products))
	}
	orders, _ := store.Orders().List(OrderListFilter{})
	if len(orders) != 1 || orders[0].ID != "order_1" {
		t.Fatalf("unexpected seed orders: %+v", orders)
	}

	// 重启后重新填充种子数据
	_ = store.Products().Delete("1")
	fresh := NewMemoryStore()
	if p, _ := fresh.Products().GetByID("1"); p == nil {
		t.Fatalf("new store should be reseeded")
	}
}

func TestMemoryOrderCreateDecrementsAndFloorsStock(t *testing.T) {
	store := newMemoryStore(fixedClock(time.Now()))
	order := &models.Order{
		UserID:    "9876543210",
		Location:  "Current Location",
		TotalCost: models.NewMoney(180),
		Status:    constants.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: "1", ProductName: "Fresh Tomatoes", Quantity: models.NewQuantity(decimal.NewFromInt(2)), Price: models.NewMoney(40), Unit: "kg"},
			{ProductID: "16", ProductName: "Fresh Pineapple", Quantity: models.NewQuantity(decimal.NewFromInt(100)), Price: models.NewMoney(80), Unit: "kg"},
			{ProductID: "missing", ProductName: "Ghost", Quantity: models.NewQuantity(decimal.NewFromInt(1)), Price: models.NewMoney(1), Unit: "kg"},
		},
	}
	if err := store.Orders().Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == "" || order.CreatedAt.IsZero() {
		t.Fatalf("id and timestamp should be assigned: %+v", order)
	}

	tomatoes, _ := store.Products().GetByID("1")
	if !tomatoes.Stock.Equal(decimal.NewFromInt(48)) {
		t.Fatalf("tomato stock want 48 got %s", tomatoes.Stock.String())
	}
	pineapple, _ := store.Products().GetByID("16")
	if !pineapple.Stock.IsZero() {
		t.Fatalf("stock should floor at zero, got %s", pineapple.Stock.String())
	}

	list, _ := store.Orders().List(OrderListFilter{UserID: "9876543210"})
	if len(list) != 1 || list[0].ID != order.ID {
		t.Fatalf("unexpected user orders: %+v", list)
	}
}

func TestMemoryOrdersNewestFirstAndStatusUpdate(t *testing.T) {
	store := newMemoryStore(fixedClock(time.Now()))
	repo := store.Orders()
	a := &models.Order{UserID: "u", Status: constants.OrderStatusPending}
	b := &models.Order{UserID: "u", Status: constants.OrderStatusPending}
	_ = repo.Create(a)
	_ = repo.Create(b)

	list, _ := repo.List(OrderListFilter{})
	if list[0].ID != b.ID {
		t.Fatalf("newest order should come first: %+v", list)
	}
	if err := repo.UpdateStatus(a.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.GetByID(a.ID)
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("status not updated: %s", got.Status)
	}
	if err := repo.UpdateStatus("nope", constants.OrderStatusCancelled); err != ErrNotFound {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestMemoryProductReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	p, _ := store.Products().GetByID("1")
	*p.ImageURL = "mutated"
	p.Name = "mutated"
	again, _ := store.Products().GetByID("1")
	if again.Name == "mutated" || *again.ImageURL == "mutated" {
		t.Fatalf("memory store leaked internal state")
	}
}

func TestMemoryProductSearchAndCounts(t *testing.T) {
	store := NewMemoryStore()
	found, _ := store.Products().List(ProductListFilter{Search: "FRESH", Type: constants.CategoryFruit})
	for _, p := range found {
		if p.Type != constants.CategoryFruit {
			t.Fatalf("type filter ignored: %+v", p)
		}
	}
	if len(found) == 0 {
		t.Fatalf("expected fresh fruits in seed data")
	}
	counts, _ := store.Products().CountByType()
	var total int64
	for _, c := range counts {
		total += c
	}
	if total != int64(len(models.SeedProducts(time.Now()))) {
		t.Fatalf("counts do not add up: %v", counts)
	}
}

func TestMemoryNotifications(t *testing.T) {
	repo := NewMemoryStore().Notifications()
	_ = repo.Create(&models.Notification{OrderID: "o1", UserID: "u1", Status: "confirmed"})
	_ = repo.Create(&models.Notification{OrderID: "o1", UserID: "u1", Status: "preparing"})
	list, _ := repo.ListByUser("u1", 0)
	if len(list) != 2 || list[0].Status != "preparing" || list[0].ID != 2 {
		t.Fatalf("unexpected notifications: %+v", list)
	}
}
