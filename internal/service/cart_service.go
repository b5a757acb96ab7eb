package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taazabazaar/internal/cache"
	"github.com/taazabazaar/internal/cart"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/repository"

	"github.com/shopspring/decimal"
)

const cartPersistTimeout = 5 * time.Second

// CartService 按用户保存购物车状态，内存状态为准，键值存储只做尽力持久化
type CartService struct {
	store       cache.Store
	productRepo repository.ProductRepository

	mu      sync.Mutex
	carts   map[string]*cart.Cart
	writers map[string]*sync.Mutex
	pending sync.WaitGroup
}

// NewCartService 创建购物车服务
func NewCartService(store cache.Store, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		carts:       make(map[string]*cart.Cart),
		writers:     make(map[string]*sync.Mutex),
	}
}

// Get 获取用户购物车，首次访问时从存储恢复
func (s *CartService) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	s.hydrate(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[userID], nil
}

// AddProduct 按商品当前信息加入购物车
func (s *CartService) AddProduct(ctx context.Context, userID, productID string, quantity decimal.Decimal) (*cart.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	product, err := s.productRepo.GetByID(strings.TrimSpace(productID))
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.Stock.IsPositive() {
		return nil, ErrProductOutOfStock
	}
	return s.dispatch(ctx, userID, cart.AddItem{Item: cart.NewLineItem(*product), Quantity: quantity}), nil
}

// UpdateQuantity 设置数量，小于等于 0 时移除
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity decimal.Decimal) (*cart.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	return s.dispatch(ctx, userID, cart.UpdateQuantity{ID: productID, Quantity: quantity}), nil
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, userID, productID string) (*cart.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	return s.dispatch(ctx, userID, cart.RemoveItem{ID: productID}), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID string) (*cart.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	return s.dispatch(ctx, userID, cart.Clear{}), nil
}

// ClearIfUnchanged 仅当购物车仍是 snapshot 时清空，返回是否已清空
func (s *CartService) ClearIfUnchanged(ctx context.Context, userID string, snapshot *cart.Cart) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrNotLoggedIn
	}
	s.hydrate(ctx, userID)
	s.mu.Lock()
	if s.carts[userID] != snapshot {
		s.mu.Unlock()
		return false, nil
	}
	s.carts[userID] = cart.Reduce(snapshot, cart.Clear{})
	s.mu.Unlock()

	s.persistAsync(userID)
	return true, nil
}

// Flush 等待所有挂起的持久化写入完成
func (s *CartService) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CartService) dispatch(ctx context.Context, userID string, action cart.Action) *cart.Cart {
	s.hydrate(ctx, userID)
	s.mu.Lock()
	current := s.carts[userID]
	next := cart.Reduce(current, action)
	changed := next != current
	s.carts[userID] = next
	s.mu.Unlock()

	if changed {
		s.persistAsync(userID)
	}
	return next
}

// hydrate 首次访问时从存储恢复购物车；读取存储期间不持有 s.mu，先装入者生效
func (s *CartService) hydrate(ctx context.Context, userID string) {
	s.mu.Lock()
	_, ok := s.carts[userID]
	s.mu.Unlock()
	if ok {
		return
	}

	var items []cart.LineItem
	if _, err := cache.GetJSON(ctx, s.store, cartKey(userID), &items); err != nil {
		logger.Warnw("cart_load_failed", "user_id", userID, "error", err)
		items = nil
	}
	loaded := cart.Reduce(cart.Empty(), cart.Load{Items: items})

	s.mu.Lock()
	if _, ok := s.carts[userID]; !ok {
		s.carts[userID] = loaded
	}
	s.mu.Unlock()
}

// persistAsync 异步写入最新状态；同一用户的写入串行执行，最后落地的总是最新快照
func (s *CartService) persistAsync(userID string) {
	s.mu.Lock()
	writer, ok := s.writers[userID]
	if !ok {
		writer = &sync.Mutex{}
		s.writers[userID] = writer
	}
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		writer.Lock()
		defer writer.Unlock()

		s.mu.Lock()
		items := s.carts[userID].Snapshot()
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), cartPersistTimeout)
		defer cancel()
		if err := cache.SetJSON(ctx, s.store, cartKey(userID), items); err != nil {
			logger.Warnw("cart_persist_failed", "user_id", userID, "error", err)
		}
	}()
}

func cartKey(userID string) string {
	return cache.Key(constants.StorageKeyCart, userID)
}
