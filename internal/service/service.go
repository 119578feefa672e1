package service

import (
	"context"
	"errors"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/model"
)

var (
	ErrUnknownCompanion   = errors.New("unknown companion")
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrEmptyMessage       = errors.New("message must not be empty")
	ErrEmptySubject       = errors.New("subject must not be empty")
	ErrInvalidSession     = errors.New("invalid session id")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrInvalidExplorer    = errors.New("invalid explorer id")
	ErrInvalidHistory     = errors.New("invalid history")
	ErrStoreUnavailable   = errors.New("storage is not configured")
)

// Generator 生成网关，由 ai.Client 实现
type Generator interface {
	Invoke(ctx context.Context, req gateway.GenerationRequest, fallback gateway.Fallback) gateway.Result
	StreamReply(ctx context.Context, req gateway.GenerationRequest, fallback gateway.Fallback) <-chan gateway.StreamChunk
}

// TranscriptStore 会话对话记录存储，由 repository.TranscriptRepo 实现
type TranscriptStore interface {
	Load(ctx context.Context, sessionID, feature string) (model.Transcript, error)
	Save(ctx context.Context, sessionID, feature string, t model.Transcript) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// AchievementStore 成就存储，由 repository.ExplorerRepo 实现
type AchievementStore interface {
	FindByID(ctx context.Context, id string) (*model.Explorer, error)
	AddAchievement(ctx context.Context, id, achievementID string) (bool, error)
}

// SpaceSource NASA 数据来源，由 nasa.Client 实现
type SpaceSource interface {
	APOD(ctx context.Context, random bool) model.APOD
	RecentCMEs(ctx context.Context) []model.CME
}
