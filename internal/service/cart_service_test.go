package service

import (
	"context"
	"testing"
	"time"

	"github.com/taazabazaar/internal/cache"
	"github.com/taazabazaar/internal/cart"
	"github.com/taazabazaar/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartServiceAddUsesCurrentProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(cache.NewMemoryStore(), repository.NewMemoryStore())

	state, err := svc.AddProduct(ctx, "u1", "1", dec("2"))
	require.NoError(t, err)
	state, err = svc.AddProduct(ctx, "u1", "14", dec("1"))
	require.NoError(t, err)

	assert.Equal(t, "180.00", state.Total.String())
	item, ok := state.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Fresh Tomatoes", item.Name)
	assert.Equal(t, "kg", item.Unit)
}

func TestCartServiceAddRejectsMissingOrOutOfStock(t *testing.T) {
	ctx := context.Background()
	memory := repository.NewMemoryStore()
	svc := newTestCartService(cache.NewMemoryStore(), memory)

	_, err := svc.AddProduct(ctx, "u1", "missing", dec("1"))
	assert.ErrorIs(t, err, ErrProductNotFound)

	product, err := memory.Products().GetByID("2")
	require.NoError(t, err)
	product.Stock.Decimal = dec("0")
	require.NoError(t, memory.Products().Update(product))

	_, err = svc.AddProduct(ctx, "u1", "2", dec("1"))
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	_, err = svc.AddProduct(ctx, "", "1", dec("1"))
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCartServicePersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	memory := repository.NewMemoryStore()

	first := newTestCartService(store, memory)
	_, err := first.AddProduct(ctx, "u1", "1", dec("2"))
	require.NoError(t, err)
	_, err = first.AddProduct(ctx, "u1", "3", dec("0.5"))
	require.NoError(t, err)
	_, err = first.UpdateQuantity(ctx, "u1", "1", dec("3"))
	require.NoError(t, err)
	require.NoError(t, first.Flush(ctx))

	var persisted []cart.LineItem
	ok, err := cache.GetJSON(ctx, store, "cart:u1", &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, persisted, 2)

	second := newTestCartService(store, memory)
	restored, err := second.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "180.00", restored.Total.String())
	assert.True(t, restored.ItemCount.Equal(dec("3.5")))
}

func TestCartServiceStoreFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(failingStore{}, repository.NewMemoryStore())

	state, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())

	state, err = svc.AddProduct(ctx, "u1", "1", dec("1"))
	require.NoError(t, err)
	require.NoError(t, svc.Flush(ctx))

	again, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Same(t, state, again)
	assert.Equal(t, "40.00", again.Total.String())
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := newTestCartService(store, repository.NewMemoryStore())

	_, err := svc.AddProduct(ctx, "u1", "1", dec("2"))
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "u1", "4", dec("1"))
	require.NoError(t, err)

	state, err := svc.Remove(ctx, "u1", "1")
	require.NoError(t, err)
	assert.Equal(t, "60.00", state.Total.String())

	state, err = svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
	require.NoError(t, svc.Flush(ctx))

	var persisted []cart.LineItem
	ok, err := cache.GetJSON(ctx, store, "cart:u1", &persisted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, persisted)
}

func TestCartServiceUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(cache.NewMemoryStore(), repository.NewMemoryStore())

	_, err := svc.AddProduct(ctx, "u1", "1", dec("1"))
	require.NoError(t, err)
	other, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartServiceFlushHonorsContext(t *testing.T) {
	svc := newTestCartService(cache.NewMemoryStore(), repository.NewMemoryStore())
	svc.pending.Add(1)
	defer svc.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Flush(ctx), context.DeadlineExceeded)
}

func TestCartServiceClearIfUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(cache.NewMemoryStore(), repository.NewMemoryStore())

	snapshot, err := svc.AddProduct(ctx, "u1", "1", dec("1"))
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "u1", "4", dec("1"))
	require.NoError(t, err)

	cleared, err := svc.ClearIfUnchanged(ctx, "u1", snapshot)
	require.NoError(t, err)
	assert.False(t, cleared)
	current, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, current.Items, 2)

	cleared, err = svc.ClearIfUnchanged(ctx, "u1", current)
	require.NoError(t, err)
	assert.True(t, cleared)
	current, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, current.IsEmpty())

	_, err = svc.ClearIfUnchanged(ctx, "", current)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

// blockingStore 读取 blockedKey 时阻塞，直到 release 关闭
type blockingStore struct {
	cache.Store
	blockedKey string
	entered    chan struct{}
	release    chan struct{}
}

func (s *blockingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == s.blockedKey {
		close(s.entered)
		<-s.release
	}
	return s.Store.Get(ctx, key)
}

func TestCartServiceSlowLoadDoesNotBlockOtherUsers(t *testing.T) {
	ctx := context.Background()
	store := &blockingStore{
		Store:      cache.NewMemoryStore(),
		blockedKey: "cart:slow",
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := newTestCartService(store, repository.NewMemoryStore())

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _ = svc.Get(ctx, "slow")
	}()
	<-store.entered

	fastDone := make(chan error, 1)
	go func() {
		_, err := svc.AddProduct(ctx, "u1", "1", dec("1"))
		fastDone <- err
	}()
	select {
	case err := <-fastDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cart operation blocked by another user's load")
	}

	close(store.release)
	<-slowDone
	require.NoError(t, svc.Flush(ctx))
}
