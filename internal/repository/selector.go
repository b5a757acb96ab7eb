package repository

import (
	"context"
	"strings"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"

	"gorm.io/gorm"
)

// Set 启动时选定的一组仓库
type Set struct {
	Products      ProductRepository
	Orders        OrderRepository
	Notifications NotificationRepository
	Source        string // remote / memory
	Fallback      bool
}

// SelectOptions 数据源选择参数
type SelectOptions struct {
	Driver      string
	Fallback    bool
	PingTimeout time.Duration
}

// Select 按配置选择数据源，只在启动时执行一次
func Select(ctx context.Context, db *gorm.DB, memory *MemoryStore, opts SelectOptions) Set {
	if memory == nil {
		memory = NewMemoryStore()
	}
	memorySet := Set{
		Products:      memory.Products(),
		Orders:        memory.Orders(),
		Notifications: memory.Notifications(),
		Source:        constants.StoreDriverMemory,
	}

	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = constants.StoreDriverAuto
	}
	if driver == constants.StoreDriverMemory {
		logger.Infow("store_selected", "source", constants.StoreDriverMemory, "reason", "configured")
		return memorySet
	}
	if db == nil {
		logger.Warnw("store_selected", "source", constants.StoreDriverMemory, "reason", "database_unavailable")
		return memorySet
	}

	products := NewProductRepository(db)
	if driver == constants.StoreDriverAuto {
		timeout := opts.PingTimeout
		if timeout <= 0 {
			timeout = 3 * time.Second
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := products.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warnw("store_selected", "source", constants.StoreDriverMemory, "reason", "remote_unreachable", "error", err)
			return memorySet
		}
	}

	remote := Set{
		Products:      products,
		Orders:        NewOrderRepository(db),
		Notifications: NewNotificationRepository(db),
		Source:        constants.StoreDriverRemote,
	}
	if opts.Fallback {
		remote = Set{
			Products:      NewFallbackProductRepository(remote.Products, memorySet.Products),
			Orders:        NewFallbackOrderRepository(remote.Orders, memorySet.Orders),
			Notifications: NewFallbackNotificationRepository(remote.Notifications, memorySet.Notifications),
			Source:        constants.StoreDriverRemote,
			Fallback:      true,
		}
	}
	logger.Infow("store_selected", "source", remote.Source, "fallback", remote.Fallback)
	return remote
}
