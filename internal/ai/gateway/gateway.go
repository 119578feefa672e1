package gateway

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/logger"
)

var errNoBackend = errors.New("no generative backend configured")

// Gateway 提示词 -> 文本的统一入口
// 每次调用恰好请求后端一次，不做自动重试；任何失败都转换为 Degraded 结果。
// 网关不持有任何会话状态，多个功能可以并发调用。
type Gateway struct {
	backend Backend
	logger  zerolog.Logger
}

// New 创建网关
func New(backend Backend) *Gateway {
	return &Gateway{
		backend: backend,
		logger:  logger.Component("gateway"),
	}
}

// Invoke 发起一次生成
// 成功时原样返回后端文本（不修剪、不校验）；失败时按分类返回 fallback 文案。
func (g *Gateway) Invoke(ctx context.Context, req GenerationRequest, fallback Fallback) Result {
	return g.call(ctx, req.Feature, fallback, func(ctx context.Context) (string, error) {
		if !req.Chat && len(req.History) == 0 {
			return g.backend.Generate(ctx, req.Prompt, req.SystemInstruction)
		}

		session, err := g.backend.NewSession(ctx, req.History.Clone(), req.SystemInstruction)
		if err != nil {
			return "", err
		}
		return session.Send(ctx, req.Prompt)
	})
}

// ContinueChat 基于调用方持有的历史继续对话
// 每次都重建一个新会话，history 不会被修改；调用方在成功后自行追加两条记录。
func (g *Gateway) ContinueChat(ctx context.Context, feature string, history model.Transcript, systemInstruction, message string, fallback Fallback) Result {
	return g.Invoke(ctx, GenerationRequest{
		Feature:           feature,
		Prompt:            message,
		SystemInstruction: systemInstruction,
		History:           history,
		Chat:              true,
	}, fallback)
}

func (g *Gateway) call(ctx context.Context, feature string, fallback Fallback, fn func(ctx context.Context) (string, error)) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = g.degrade(feature, fallback, r)
		}
	}()

	if g.backend == nil {
		return g.degrade(feature, fallback, errNoBackend)
	}

	text, err := fn(ctx)
	if err != nil {
		return g.degrade(feature, fallback, err)
	}
	return Success(text)
}

// degrade 分类、记录日志并返回兜底结果；原始错误不会出现在返回文本中
func (g *Gateway) degrade(feature string, fallback Fallback, failure any) Result {
	kind := Classify(failure)

	event := g.logger.Warn()
	if kind == KindUnknown {
		event = g.logger.Error()
	}
	if err, ok := failure.(error); ok {
		event = event.Err(err)
	} else {
		event = event.Interface("failure", failure)
	}
	event.Str("feature", feature).Str("kind", kind.String()).Msg("generation degraded to fallback")

	return Degraded(fallback.For(kind), kind)
}
