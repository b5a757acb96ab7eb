package router

import (
	"github.com/taazabazaar/internal/config"
	adminhandlers "github.com/taazabazaar/internal/http/handlers/admin"
	publichandlers "github.com/taazabazaar/internal/http/handlers/public"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginLimiter := NewLoginLimiter(cfg.Security.LoginRateLimit, c.RedisClient, cfg.Redis.Prefix)
	loginRateLimit := RateLimitMiddleware(loginLimiter, KeyByIP)
	sessionAuth := SessionAuthMiddleware(c.SessionService)
	rbac := RBACMiddleware(c.AuthzService)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok", "store": c.StoreSource})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/fresh", publicHandler.GetFreshPicks)
		apiV1.GET("/products/subscribe", publicHandler.SubscribeProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)

		// 登录注册
		apiV1.POST("/login", loginRateLimit, publicHandler.Login)
		apiV1.POST("/register", publicHandler.Register)
		apiV1.POST("/admin/login", loginRateLimit, publicHandler.AdminLogin)
		apiV1.POST("/logout", publicHandler.Logout)

		// 顾客接口（需登录）
		user := apiV1.Group("")
		user.Use(sessionAuth, rbac)
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.GET("/orders", publicHandler.ListOrders)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/notifications", publicHandler.ListNotifications)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(sessionAuth, rbac)
		{
			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/subscribe", adminHandler.SubscribeOrders)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
		}
	}

	return r
}
