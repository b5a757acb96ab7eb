package router

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			constants.SessionTokenHeader,
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件，客户端错误记 warn，服务端错误记 error
func LoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = logger.Z()
	}
	sugar := base.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		switch {
		case len(c.Errors) > 0 || c.Writer.Status() >= 500:
			log.Errorw("request", "errors", c.Errors.String())
		case c.Writer.Status() >= 400:
			log.Warnw("request")
		default:
			log.Infow("request")
		}
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionResolver 根据 token 解析会话
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*service.Session, error)
}

// SessionAuthMiddleware 会话鉴权中间件：读取 Bearer token 或 X-Session-Token
func SessionAuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			logger.Errorw("session_auth_service_unavailable")
			shared.RespondError(c, service.ErrNotLoggedIn)
			c.Abort()
			return
		}
		token := shared.SessionTokenFromRequest(c)
		if token == "" {
			shared.RespondError(c, service.ErrNotLoggedIn)
			c.Abort()
			return
		}
		session, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			shared.RespondError(c, err)
			c.Abort()
			return
		}
		shared.SetSession(c, token, session)
		c.Next()
	}
}

// RoleEnforcer 按角色判定资源访问
type RoleEnforcer interface {
	EnforceRole(role, obj, act string) (bool, error)
}

// RBACMiddleware 角色鉴权中间件，需在 SessionAuthMiddleware 之后使用
func RBACMiddleware(enforcer RoleEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := shared.GetSession(c)
		if !ok {
			c.Abort()
			return
		}
		if enforcer == nil {
			logger.Errorw("rbac_service_unavailable")
			shared.RespondError(c, service.ErrForbidden)
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := enforcer.EnforceRole(session.Role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"user_id", session.ID,
				"role", session.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			shared.RespondError(c, service.ErrForbidden)
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("rbac_denied",
				"user_id", session.ID,
				"role", session.Role,
				"method", c.Request.Method,
				"path", resource,
			)
			shared.RespondError(c, service.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
