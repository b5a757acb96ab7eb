// Package cache 提供持久化键值存储（会话与购物车）。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Store 键值存储接口
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON 读取 JSON 值，不存在时返回 false
func GetJSON(ctx context.Context, store Store, key string, dest interface{}) (bool, error) {
	if store == nil {
		return false, nil
	}
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 值
func SetJSON(ctx context.Context, store Store, key string, value interface{}) error {
	if store == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, payload)
}

// Key 拼接命名空间与标识
func Key(namespace, id string) string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(namespace), strings.TrimSpace(id))
}
