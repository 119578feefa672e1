package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cosmoconnect/internal/config"
)

// ErrCacheMiss key 不存在
var ErrCacheMiss = errors.New("cache miss")

// RedisCache Redis 缓存封装，值统一以 JSON 保存
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 缓存客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Set 设置缓存
func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存，不存在时返回 ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return missOr(err)
	}
	return json.Unmarshal(data, dest)
}

// HSet 设置 hash 字段，并刷新整个 key 的过期时间
func (c *RedisCache) HSet(ctx context.Context, key, field string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	if expiration > 0 {
		pipe.Expire(ctx, key, expiration)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// HGet 获取 hash 字段，不存在时返回 ErrCacheMiss
func (c *RedisCache) HGet(ctx context.Context, key, field string, dest any) error {
	data, err := c.client.HGet(ctx, key, field).Bytes()
	if err != nil {
		return missOr(err)
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Exists 检查 key 是否存在
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// Ping 健康检查
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func missOr(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	return err
}

// 常用 key 模式
const (
	SessionKeyPrefix = "session:"
	APODKeyPrefix    = "nasa:apod:"
)

// SessionKey 会话对话记录 key，每个功能一个 hash 字段
func SessionKey(sessionID string) string {
	return SessionKeyPrefix + sessionID
}

// APODKey 指定日期的 APOD 缓存 key
func APODKey(date string) string {
	return APODKeyPrefix + date
}
