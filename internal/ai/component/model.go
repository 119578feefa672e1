package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"cosmoconnect/internal/config"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultArkModel    = "doubao-seed-1-6-flash-250615"
	defaultArkBaseURL  = "https://ark.cn-beijing.volces.com/api/v3"
)

// NewChatModel 创建 Eino ChatModel
// 支持 openai / azure / ark；gemini 走 genai SDK，不经过这里
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIChatModel(ctx, cfg, false)
	case "azure":
		return newOpenAIChatModel(ctx, cfg, true)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("provider %q is not backed by an eino chat model", cfg.Provider)
	}
}

// newOpenAIChatModel OpenAI 及 Azure OpenAI
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig, azure bool) (model.ChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	modelCfg := &openai.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		ByAzure: azure,
	}

	opts := cfg.Options
	modelCfg.Temperature = float32Ptr(opts.Temperature)
	modelCfg.TopP = float32Ptr(opts.TopP)
	if opts.MaxTokens > 0 {
		maxTokens := opts.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 火山方舟
func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultArkBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultArkModel
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}

	opts := cfg.Options
	modelCfg.Temperature = float32Ptr(opts.Temperature)
	modelCfg.TopP = float32Ptr(opts.TopP)
	if opts.MaxTokens > 0 {
		maxTokens := opts.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	return arkext.NewChatModel(ctx, modelCfg)
}

// float32Ptr 未设置（<=0）时返回 nil，由模型使用默认值
func float32Ptr(v float64) *float32 {
	if v <= 0 {
		return nil
	}
	f := float32(v)
	return &f
}
