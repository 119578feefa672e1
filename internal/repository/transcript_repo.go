package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/cache"
)

// TranscriptRepo 会话对话记录仓库 (Redis)
// 一个会话一个 hash，字段为功能名；整个会话共享同一个过期时间
type TranscriptRepo struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewTranscriptRepo 创建对话记录仓库
func NewTranscriptRepo(c *cache.RedisCache, ttl time.Duration) *TranscriptRepo {
	return &TranscriptRepo{cache: c, ttl: ttl}
}

// Load 读取对话记录，会话不存在时返回空记录
func (r *TranscriptRepo) Load(ctx context.Context, sessionID, feature string) (model.Transcript, error) {
	var t model.Transcript
	err := r.cache.HGet(ctx, cache.SessionKey(sessionID), feature, &t)
	if errors.Is(err, cache.ErrCacheMiss) {
		return model.Transcript{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript %s/%s: %w", sessionID, feature, err)
	}
	return t.Clone(), nil
}

// Save 保存对话记录并刷新会话过期时间
func (r *TranscriptRepo) Save(ctx context.Context, sessionID, feature string, t model.Transcript) error {
	if err := r.cache.HSet(ctx, cache.SessionKey(sessionID), feature, t.Clone(), r.ttl); err != nil {
		return fmt.Errorf("save transcript %s/%s: %w", sessionID, feature, err)
	}
	return nil
}

// Exists 会话是否还有未过期的对话记录
func (r *TranscriptRepo) Exists(ctx context.Context, sessionID string) (bool, error) {
	ok, err := r.cache.Exists(ctx, cache.SessionKey(sessionID))
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", sessionID, err)
	}
	return ok, nil
}

// Delete 丢弃整个会话的所有对话记录
func (r *TranscriptRepo) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, cache.SessionKey(sessionID))
}
