package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/ctxutil"
	"cosmoconnect/internal/pkg/id"
	"cosmoconnect/internal/pkg/logger"
)

// ChatService 多轮对话服务
type ChatService interface {
	// Chat 与伙伴对话一轮
	// 请求带 SessionID 时使用服务端保存的记录，否则使用请求中的 History
	Chat(ctx context.Context, companion string, req *model.ChatRequest) (*model.ChatResponse, error)
	// ResetSession 丢弃会话内所有功能的对话记录
	ResetSession(ctx context.Context, sessionID string) error
}

type chatService struct {
	gen          Generator
	transcripts  TranscriptStore
	achievements AchievementService
	logger       zerolog.Logger
}

// NewChatService 创建对话服务；transcripts 和 achievements 可以为 nil
func NewChatService(gen Generator, transcripts TranscriptStore, achievements AchievementService) ChatService {
	return &chatService{
		gen:          gen,
		transcripts:  transcripts,
		achievements: achievements,
		logger:       logger.Component("chat"),
	}
}

// Chat 处理对话请求
// 业务流程: 1. 获取历史 -> 2. 调用网关 -> 3. 成功时提交本轮 -> 4. 授予成就
func (s *chatService) Chat(ctx context.Context, name string, req *model.ChatRequest) (*model.ChatResponse, error) {
	companion, ok := Companions[name]
	if !ok {
		return nil, ErrUnknownCompanion
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sessionID, err := s.resolveSession(req.SessionID, companion.Stateless)
	if err != nil {
		return nil, err
	}
	log := s.logger.With().Str("companion", name).Str("session_id", sessionID).Logger()

	// 1. 获取对话历史
	// 新分配的会话还没有记录，沿用请求中的 History
	stored := sessionID != "" && sessionID == req.SessionID
	history, err := s.history(ctx, companion, sessionID, stored, req.History)
	if err != nil {
		return nil, err
	}

	// 2. 调用网关
	result := s.gen.Invoke(ctx, gateway.GenerationRequest{
		Feature:           name,
		Prompt:            message,
		SystemInstruction: companion.SystemInstruction,
		History:           history,
		Chat:              true,
	}, companion.Fallback)

	resp := &model.ChatResponse{
		Message:    result.Text,
		Degraded:   result.IsDegraded(),
		SessionID:  sessionID,
		Transcript: history,
	}
	if result.IsDegraded() {
		resp.Reason = result.Reason.String()
		return resp, nil
	}

	// 3. 提交本轮；无状态伙伴不保留历史
	if !companion.Stateless {
		resp.Transcript = history.Append(message, result.Text)
		if sessionID != "" {
			if err := s.transcripts.Save(ctx, sessionID, name, resp.Transcript); err != nil {
				log.Warn().Err(err).Msg("failed to save transcript")
			}
		}
	}

	// 4. 授予成就
	explorerID := ctxutil.ResolveExplorerID(ctx, req.ExplorerID)
	if companion.Achievement != "" && explorerID != "" && s.achievements != nil {
		awarded, err := s.achievements.Award(ctx, explorerID, companion.Achievement)
		if err != nil {
			log.Warn().Err(err).Str("achievement", companion.Achievement).Msg("failed to award achievement")
		} else if awarded {
			resp.Awarded = []string{companion.Achievement}
		}
	}

	log.Info().Int("turns", len(resp.Transcript)).Msg("chat completed")
	return resp, nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionID string) error {
	if s.transcripts == nil {
		return ErrStoreUnavailable
	}
	if !id.IsValid(sessionID) {
		return ErrInvalidSession
	}

	exists, err := s.transcripts.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}
	return s.transcripts.Delete(ctx, sessionID)
}

// resolveSession 没有存储或无状态伙伴时不使用会话；缺省时分配新会话
func (s *chatService) resolveSession(sessionID string, stateless bool) (string, error) {
	if s.transcripts == nil || stateless {
		return "", nil
	}
	if sessionID == "" {
		return id.New(), nil
	}
	if !id.IsValid(sessionID) {
		return "", ErrInvalidSession
	}
	return sessionID, nil
}

func (s *chatService) history(ctx context.Context, companion Companion, sessionID string, stored bool, inline model.Transcript) (model.Transcript, error) {
	if companion.Stateless {
		return model.Transcript{}, nil
	}

	history := inline.Clone()
	if stored {
		t, err := s.transcripts.Load(ctx, sessionID, companion.Name)
		if err != nil {
			return nil, err
		}
		history = t
	}

	if len(history) == 0 {
		return companion.Seed(), nil
	}
	if err := history.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHistory, err)
	}
	return history, nil
}
