package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cosmoconnect/internal/ai/backend"
	"cosmoconnect/internal/ai/component"
	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/config"
)

// Client AI 能力层客户端
// 职责: 按配置选择生成后端，并把所有调用收口到 gateway
type Client struct {
	*gateway.Gateway
	provider string
}

// NewClient 创建 AI 客户端
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	b, provider, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Str("provider", provider).Str("model", cfg.Model).Msg("AI backend ready")

	return &Client{
		Gateway:  gateway.New(b),
		provider: provider,
	}, nil
}

// NewBackend 按 provider 创建后端，返回实际使用的 provider
// 未配置 API key 时退回 mock，保证本地开发可以离线运行
func NewBackend(ctx context.Context, cfg *config.AIConfig) (gateway.Backend, string, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "gemini"
	}

	if provider != "mock" && cfg.APIKey == "" {
		log.Warn().Str("provider", provider).Msg("AI API key not configured, using mock mode")
		provider = "mock"
	}

	switch provider {
	case "mock":
		return backend.NewMock(), provider, nil
	case "gemini":
		g, err := backend.NewGemini(ctx, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gemini backend: %w", err)
		}
		return g, provider, nil
	case "openai", "azure", "ark":
		chatModel, err := component.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create chat model: %w", err)
		}
		return backend.NewEino(chatModel), provider, nil
	default:
		return nil, "", fmt.Errorf("unsupported AI provider: %s", provider)
	}
}

// Provider 实际使用的 provider
func (c *Client) Provider() string {
	return c.provider
}

// Close 关闭客户端
func (c *Client) Close() error {
	return nil
}
