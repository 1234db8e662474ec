package cache

import (
	"fmt"
	"strings"

	"github.com/dichfoto/dichfoto/cache/memory"
	"github.com/dichfoto/dichfoto/cache/redis"
	"github.com/dichfoto/dichfoto/cache/types"
	"github.com/dichfoto/dichfoto/config"
)

// NewProvider 按配置创建缓存提供者（memory / redis）
func NewProvider(cfg *config.Config) (types.Cache, error) {
	switch cfg.CacheType {
	case "", "memory":
		return memory.NewMemory(memory.Config{
			NumCounters: 100000,
			MaxCost:     64 << 20, // 64MB
			BufferItems: 64,
			Metrics:     false,
		})
	case "redis":
		return redis.NewRedis(cfg.CacheRedisAddr, cfg.CacheRedisPassword, cfg.CacheRedisDB)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}

// KeyBuilder 缓存键构建器
type KeyBuilder struct {
	prefix string
	sep    string
}

// NewKeyBuilder 创建新的键构建器
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
		sep:    ":",
	}
}

// Build 构建缓存键
func (kb *KeyBuilder) Build(parts ...string) string {
	if len(parts) == 0 {
		return kb.prefix
	}
	return kb.prefix + kb.sep + strings.Join(parts, kb.sep)
}

// BuildID 构建带 ID 的缓存键
func (kb *KeyBuilder) BuildID(id interface{}) string {
	return fmt.Sprintf("%s%s%v", kb.prefix, kb.sep, id)
}

// 预定义的 KeyBuilder 实例
var (
	// Share 公开分享页载荷缓存
	Share = NewKeyBuilder("share")

	// Album 相册缓存
	Album = NewKeyBuilder("album")

	// LikeCount 点赞计数缓存
	LikeCount = NewKeyBuilder("like_count")

	// Stats 后台概览统计缓存
	Stats = NewKeyBuilder("stats")
)
