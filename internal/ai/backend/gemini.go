package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"google.golang.org/genai"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/config"
	dm "cosmoconnect/internal/model"
)

const defaultGeminiModel = "gemini-2.5-flash"

var errEmptyResponse = errors.New("gemini returned an empty response")

// Gemini 基于 google.golang.org/genai 的后端
type Gemini struct {
	client *genai.Client
	model  string
	opts   config.AIOptionsConfig
}

// NewGemini 创建 Gemini 后端
func NewGemini(ctx context.Context, cfg *config.AIConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	// Base URL (用于代理)
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	return &Gemini{
		client: client,
		model:  modelName,
		opts:   cfg.Options,
	}, nil
}

// Generate 一次性生成
func (g *Gemini) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.contentConfig(systemInstruction))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return responseText(resp)
}

// NewSession 以历史创建 Chat
func (g *Gemini) NewSession(ctx context.Context, history dm.Transcript, systemInstruction string) (gateway.Session, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}

	chat, err := g.client.Chats.Create(ctx, g.model, g.contentConfig(systemInstruction), toContents(history))
	if err != nil {
		return nil, fmt.Errorf("gemini create chat: %w", err)
	}
	return &geminiSession{chat: chat}, nil
}

func (g *Gemini) contentConfig(systemInstruction string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}
	if g.opts.Temperature > 0 {
		temp := float32(g.opts.Temperature)
		cfg.Temperature = &temp
	}
	if g.opts.TopP > 0 {
		topP := float32(g.opts.TopP)
		cfg.TopP = &topP
	}
	if g.opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(g.opts.MaxTokens)
	}
	return cfg
}

type geminiSession struct {
	chat *genai.Chat
}

// Send 发送消息
func (s *geminiSession) Send(ctx context.Context, message string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}
	return responseText(resp)
}

// SendStream 流式发送消息
func (s *geminiSession) SendStream(ctx context.Context, message string) (gateway.FragmentStream, error) {
	next, stop := iter.Pull2(s.chat.SendMessageStream(ctx, genai.Part{Text: message}))
	return &pullStream{next: next, stop: stop}, nil
}

// pullStream 把 iter.Seq2 适配为 Recv/Close
type pullStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

func (s *pullStream) Recv() (string, error) {
	resp, err, ok := s.next()
	if !ok {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("gemini stream: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func (s *pullStream) Close() {
	s.stop()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errEmptyResponse
	}
	return resp.Text(), nil
}

func toContents(history dm.Transcript) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == dm.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}
