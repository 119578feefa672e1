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

// StoryUpdate 互动故事的一个快照
// 只有成功的最终快照携带更新后的 Transcript
type StoryUpdate struct {
	gateway.StreamChunk
	SessionID  string           `json:"session_id,omitempty"`
	Transcript model.Transcript `json:"transcript,omitempty"`
	Awarded    []string         `json:"awarded,omitempty"`
}

// StoryService 互动故事 (Living Storybook)
type StoryService interface {
	// Stream 开始或继续故事；Message 为空时开始新故事
	// 返回的 channel 在故事段落结束或 ctx 取消后关闭
	Stream(ctx context.Context, req *model.StoryRequest) (<-chan StoryUpdate, error)
}

type storyService struct {
	gen          Generator
	transcripts  TranscriptStore
	achievements AchievementService
	logger       zerolog.Logger
}

// NewStoryService 创建互动故事服务；transcripts 和 achievements 可以为 nil
func NewStoryService(gen Generator, transcripts TranscriptStore, achievements AchievementService) StoryService {
	return &storyService{
		gen:          gen,
		transcripts:  transcripts,
		achievements: achievements,
		logger:       logger.Component("story"),
	}
}

func (s *storyService) Stream(ctx context.Context, req *model.StoryRequest) (<-chan StoryUpdate, error) {
	sessionID := ""
	if s.transcripts != nil {
		switch {
		case req.SessionID == "":
			sessionID = id.New()
		case id.IsValid(req.SessionID):
			sessionID = req.SessionID
		default:
			return nil, ErrInvalidSession
		}
	}

	message := strings.TrimSpace(req.Message)
	history := model.Transcript{}
	if message == "" {
		// 新故事，丢弃旧记录
		message = StoryOpening
	} else {
		var err error
		if history, err = s.history(ctx, sessionID, req); err != nil {
			return nil, err
		}
	}

	chunks := s.gen.StreamReply(ctx, gateway.GenerationRequest{
		Feature:           FeatureStorybook,
		Prompt:            message,
		SystemInstruction: storytellerInstruction,
		History:           history,
		Chat:              true,
	}, storyFallback)

	explorerID := ctxutil.ResolveExplorerID(ctx, req.ExplorerID)
	out := make(chan StoryUpdate)
	go func() {
		defer close(out)
		for chunk := range chunks {
			update := StoryUpdate{StreamChunk: chunk, SessionID: sessionID}
			if chunk.Final {
				s.finish(ctx, &update, explorerID, history, message)
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// finish 成功时提交本轮并检查成就；失败时记录保持不变
func (s *storyService) finish(ctx context.Context, update *StoryUpdate, explorerID string, history model.Transcript, message string) {
	if update.Degraded {
		update.Transcript = history
		return
	}

	// 客户端可能已经断开，提交不跟随请求取消
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With().Str("session_id", update.SessionID).Logger()

	update.Transcript = history.Append(message, update.Raw)
	if update.SessionID != "" {
		if err := s.transcripts.Save(ctx, update.SessionID, FeatureStorybook, update.Transcript); err != nil {
			log.Warn().Err(err).Msg("failed to save story transcript")
		}
	}

	// 第一轮是开场，之后每一轮都是一次选择
	choices := update.Transcript.UserTurns() - 1
	if choices >= StoryExplorerChoices && explorerID != "" && s.achievements != nil {
		awarded, err := s.achievements.Award(ctx, explorerID, model.AchievementStoryExplorer)
		if err != nil {
			log.Warn().Err(err).Msg("failed to award story explorer")
		} else if awarded {
			update.Awarded = []string{model.AchievementStoryExplorer}
		}
	}

	log.Info().Int("choices", choices).Int("options", len(update.Choices)).Msg("story segment completed")
}

func (s *storyService) history(ctx context.Context, sessionID string, req *model.StoryRequest) (model.Transcript, error) {
	if sessionID != "" && sessionID == req.SessionID {
		return s.transcripts.Load(ctx, sessionID, FeatureStorybook)
	}
	history := req.History.Clone()
	if err := history.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHistory, err)
	}
	return history, nil
}
