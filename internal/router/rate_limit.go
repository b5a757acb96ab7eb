package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// Limiter 限流器，返回是否放行以及建议等待时间
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RedisWindowLimiter 基于 Redis 固定窗口计数的限流器（多实例共享）
type RedisWindowLimiter struct {
	client        *redis.Client
	prefix        string
	windowSeconds int
	maxRequests   int
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// NewRedisWindowLimiter 创建 Redis 限流器
func NewRedisWindowLimiter(client *redis.Client, prefix string, windowSeconds, maxRequests int) *RedisWindowLimiter {
	return &RedisWindowLimiter{client: client, prefix: prefix, windowSeconds: windowSeconds, maxRequests: maxRequests}
}

// Allow 计数并判断是否超限
func (l *RedisWindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l == nil || l.client == nil || l.windowSeconds <= 0 || l.maxRequests <= 0 {
		return true, 0, nil
	}
	if l.prefix != "" {
		key = fmt.Sprintf("%s:%s", l.prefix, key)
	}
	result, err := rateLimitScript.Run(ctx, l.client, []string{key}, l.windowSeconds).Result()
	if err != nil {
		return false, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return false, 0, fmt.Errorf("unexpected rate limit result: %v", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return false, 0, fmt.Errorf("unexpected rate limit counter: %v", values[0])
	}
	if count <= int64(l.maxRequests) {
		return true, 0, nil
	}
	ttlSeconds, _ := toInt64(values[1])
	if ttlSeconds < 1 {
		ttlSeconds = int64(l.windowSeconds)
	}
	return false, time.Duration(ttlSeconds) * time.Second, nil
}

// IPLimiter 进程内令牌桶限流器，每个 key 一个 rate.Limiter
type IPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewIPLimiter 创建进程内限流器
func NewIPLimiter(limit rate.Limit, burst int) *IPLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPLimiter{limiters: make(map[string]*rate.Limiter), limit: limit, burst: burst}
}

// Allow 消耗一个令牌
func (l *IPLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, time.Second, nil
	}
	delay := reservation.Delay()
	if delay == 0 {
		return true, 0, nil
	}
	reservation.Cancel()
	return false, delay, nil
}

// NewLoginLimiter 按配置创建登录限流器；有 Redis 时使用共享计数，否则使用进程内令牌桶
func NewLoginLimiter(cfg config.LoginRateLimitConfig, client *redis.Client, prefix string) Limiter {
	if !cfg.Enabled || cfg.RequestsPerSecond <= 0 || cfg.Burst <= 0 {
		return nil
	}
	if client != nil {
		window := int(math.Ceil(float64(cfg.Burst) / cfg.RequestsPerSecond))
		if strings.TrimSpace(prefix) == "" {
			prefix = "tb"
		}
		return NewRedisWindowLimiter(client, prefix+":rate:login", window, cfg.Burst)
	}
	return NewIPLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
}

// RateLimitMiddleware 频率限制中间件，limiter 为 nil 时不限流
func RateLimitMiddleware(limiter Limiter, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		allowed, wait, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "error", err)
			response.ErrorFrom(c, response.WrapError(response.CodeUnavailable, "rate limit unavailable", err))
			c.Abort()
			return
		}
		if !allowed {
			waitSeconds := int(math.Ceil(wait.Seconds()))
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			response.ErrorFrom(c, response.NewAppError(response.CodeTooManyRequests,
				fmt.Sprintf("too many attempts, retry in %d seconds", waitSeconds)))
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
