package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/taazabazaar/internal/authz"
	"github.com/taazabazaar/internal/cache"
	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/geo"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/queue"
	"github.com/taazabazaar/internal/repository"
	"github.com/taazabazaar/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const kvPingTimeout = 2 * time.Second

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	RedisClient *redis.Client
	KVStore     cache.Store
	Memory      *repository.MemoryStore
	StoreSource string

	// Repositories
	ProductRepo      repository.ProductRepository
	OrderRepo        repository.OrderRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthzService           *authz.Service
	SessionService         *service.SessionService
	CartService            *service.CartService
	ProductService         *service.ProductService
	OrderService           *service.OrderService
	NotificationService    *service.NotificationService
	NotificationDispatcher *service.NotificationDispatcher
}

// NewContainer 初始化容器；db 为 nil 时只使用内存存储
func NewContainer(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 键值存储
	c.initKVStore(ctx)

	// 2. 初始化 Repositories
	c.initRepositories(ctx, db)

	// 3. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warnw("provider_close_redis_failed", "error", err)
		}
	}
}

func (c *Container) initKVStore(ctx context.Context) {
	c.KVStore = cache.NewMemoryStore()
	client := cache.NewRedisClient(&c.Config.Redis)
	if client == nil {
		logger.Infow("provider_kv_store_selected", "backend", "memory")
		return
	}
	store := cache.NewRedisStore(client, c.Config.Redis.Prefix, c.Config.Session.TTL())
	pingCtx, cancel := context.WithTimeout(ctx, kvPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
		_ = client.Close()
		logger.Infow("provider_kv_store_selected", "backend", "memory")
		return
	}
	c.RedisClient = client
	c.KVStore = store
	logger.Infow("provider_kv_store_selected", "backend", "redis")
}

func (c *Container) initRepositories(ctx context.Context, db *gorm.DB) {
	c.Memory = repository.NewMemoryStore()
	set := repository.Select(ctx, db, c.Memory, repository.SelectOptions{
		Driver:      c.Config.Store.Driver,
		Fallback:    c.Config.Store.Fallback,
		PingTimeout: c.Config.Store.PingTimeout(),
	})
	c.StoreSource = set.Source
	c.ProductRepo = set.Products
	c.OrderRepo = set.Orders
	c.NotificationRepo = set.Notifications
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService()
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService

	sessionService, err := service.NewSessionService(c.KVStore, c.Config.Admin)
	if err != nil {
		logger.Errorw("provider_init_session_failed", "error", err)
		return err
	}
	c.SessionService = sessionService

	var geocoder geo.Geocoder = geo.NoopGeocoder{}
	geoTimeout := time.Duration(c.Config.Geo.TimeoutMS) * time.Millisecond
	if c.Config.Geo.Enabled {
		geocoder = geo.NewNominatimGeocoder(c.Config.Geo.Endpoint, c.Config.Geo.UserAgent, geoTimeout)
	}

	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.KVStore, c.ProductRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.NotificationDispatcher = service.NewNotificationDispatcher(c.QueueClient, c.NotificationService)
	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		OrderRepo:         c.OrderRepo,
		Carts:             c.CartService,
		Resolver:          geo.NewResolver(geocoder, geoTimeout),
		Notifier:          c.NotificationDispatcher,
		StrictTransitions: c.Config.Order.StrictTransitions,
	})
	return nil
}
