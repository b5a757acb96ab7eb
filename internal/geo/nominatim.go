package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NominatimGeocoder 基于 OpenStreetMap Nominatim 的反向地理编码
type NominatimGeocoder struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewNominatimGeocoder 创建 Nominatim 客户端
func NewNominatimGeocoder(endpoint, userAgent string, timeout time.Duration) *NominatimGeocoder {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &NominatimGeocoder{
		endpoint:  strings.TrimSpace(endpoint),
		userAgent: strings.TrimSpace(userAgent),
		client:    &http.Client{Timeout: timeout},
	}
}

type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		Suburb      string `json:"suburb"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode 查询坐标对应的地址
func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, coords Coordinates) ([]Address, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))

	body, err := g.get(ctx, query)
	if err != nil {
		return nil, err
	}
	var resp nominatimResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	if strings.TrimSpace(resp.Error) != "" {
		return nil, nil
	}
	street := strings.TrimSpace(strings.Join([]string{resp.Address.HouseNumber, resp.Address.Road}, " "))
	if street == "" {
		street = resp.Address.Suburb
	}
	city := firstNonEmpty(resp.Address.City, resp.Address.Town, resp.Address.Village)
	address := Address{Street: street, City: city, Region: resp.Address.State}
	if address.Format() == "" {
		return nil, nil
	}
	return []Address{address}, nil
}

func (g *NominatimGeocoder) get(ctx context.Context, query url.Values) ([]byte, error) {
	endpoint := g.endpoint
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + query.Encode()
	} else {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
