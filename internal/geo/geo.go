// Package geo 负责把下单时的设备坐标解析为可读的配送地址。
package geo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"
)

// ErrGeocoderDisabled 未启用反向地理编码
var ErrGeocoderDisabled = errors.New("geocoder disabled")

// Coordinates 经纬度
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address 反向地理编码结果
type Address struct {
	Street string
	City   string
	Region string
}

// Format 按 "street city region" 拼接，缺失字段跳过
func (a Address) Format() string {
	return strings.Join(strings.Fields(strings.Join([]string{a.Street, a.City, a.Region}, " ")), " ")
}

// Geocoder 反向地理编码接口
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coords Coordinates) ([]Address, error)
}

// NoopGeocoder 未配置地理编码服务时使用
type NoopGeocoder struct{}

// ReverseGeocode 始终返回 ErrGeocoderDisabled
func (NoopGeocoder) ReverseGeocode(context.Context, Coordinates) ([]Address, error) {
	return nil, ErrGeocoderDisabled
}

// Request 地址解析请求
type Request struct {
	Coordinates      *Coordinates
	PermissionDenied bool
	// FallbackAddress 会话中保存的地址
	FallbackAddress string
}

// Resolver 地址解析器：定位失败时降级为会话地址或占位文本，永不报错
type Resolver struct {
	geocoder Geocoder
	timeout  time.Duration
}

// NewResolver 创建地址解析器
func NewResolver(geocoder Geocoder, timeout time.Duration) *Resolver {
	if geocoder == nil {
		geocoder = NoopGeocoder{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{geocoder: geocoder, timeout: timeout}
}

// Resolve 解析配送地址
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	fallback := strings.TrimSpace(req.FallbackAddress)
	if req.PermissionDenied || req.Coordinates == nil {
		return firstNonEmpty(fallback, constants.LocationNotProvided)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	addresses, err := r.geocoder.ReverseGeocode(lookupCtx, *req.Coordinates)
	if err != nil {
		if !errors.Is(err, ErrGeocoderDisabled) {
			logger.Warnw("geo_reverse_lookup_failed", "error", err)
		}
		return firstNonEmpty(fallback, constants.LocationNotProvided)
	}
	if len(addresses) == 0 {
		return firstNonEmpty(fallback, constants.LocationCurrentLocation)
	}
	return firstNonEmpty(addresses[0].Format(), fallback, constants.LocationCurrentLocation)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
