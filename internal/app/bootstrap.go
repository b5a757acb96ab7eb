package app

import (
	"context"
	"errors"

	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/provider"
	"github.com/taazabazaar/internal/router"
	"github.com/taazabazaar/internal/worker"

	"gorm.io/gorm"
)

// BuildRunner 构建服务运行器
func BuildRunner(ctx context.Context, cfg *config.Config, mode string, db *gorm.DB) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 初始化 Worker 服务；all 模式下队列未启用时直接跳过
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container.NotificationService)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	// 最后停止：等待其余服务退出后再落盘购物车并释放连接
	services = append(services, newContainerService(container))
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(context.Background(), opts.Config, opts.Mode, opts.DB)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

// containerService 将容器生命周期挂到 Runner 上
type containerService struct {
	container *provider.Container
}

func newContainerService(c *provider.Container) *containerService {
	return &containerService{container: c}
}

func (s *containerService) Name() string { return "container" }

// Start 阻塞直到 Runner 取消
func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 落盘未完成的购物车写入并关闭外部连接
func (s *containerService) Stop(ctx context.Context) error {
	if s == nil || s.container == nil {
		return nil
	}
	defer s.container.Close()
	if s.container.CartService == nil {
		return nil
	}
	if err := s.container.CartService.Flush(ctx); err != nil {
		logger.Warnw("app_cart_flush_failed", "error", err)
		return err
	}
	return nil
}
