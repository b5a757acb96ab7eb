package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/taazabazaar/internal/app"
	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	defer logger.Sync()

	if cfg.Server.Mode == "release" && cfg.Admin.Password == "1234" {
		stdLog.Printf("警告: 管理员密码仍为默认值，建议通过 ADMIN_PASSWORD 修改")
	}

	// 远程表存储不可用时以内存存储继续启动
	db := openDatabase(cfg)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func openDatabase(cfg *config.Config) *gorm.DB {
	if cfg.Store.Driver == constants.StoreDriverMemory {
		return nil
	}
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Database.Debug)
	if err != nil {
		logger.Errorw("database_open_failed", "driver", cfg.Database.Driver, "error", err)
		return nil
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(db); err != nil {
		logger.Errorw("database_migrate_failed", "error", err)
		return db
	}
	if cfg.Store.Seed {
		if _, err := models.SeedCatalog(db, time.Now()); err != nil {
			logger.Warnw("database_seed_failed", "error", err)
		}
	}
	return db
}

func printStartupBanner() {
	fmt.Println(ansiGreen + "╔══════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiGreen + "║                  🥬 TaazaBazaar API 启动中                   ║" + ansiReset)
	fmt.Println(ansiGreen + "╚══════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + ansiBold + "Fresh fruits & vegetables, delivered." + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
