package gateway

import (
	"context"

	"cosmoconnect/internal/model"
)

// Backend 生成式文本后端
// 具体实现见 internal/ai/backend（Gemini / Eino / Mock）
type Backend interface {
	// Generate 一次性生成
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)

	// NewSession 以给定历史和系统指令创建一次会话
	// 会话只在一次调用内有效，网关不保留任何会话对象
	NewSession(ctx context.Context, history model.Transcript, systemInstruction string) (Session, error)
}

// Session 单次调用范围内的对话会话
type Session interface {
	// Send 发送消息并返回完整回复
	Send(ctx context.Context, message string) (string, error)

	// SendStream 发送消息并以片段流的形式返回回复
	SendStream(ctx context.Context, message string) (FragmentStream, error)
}

// FragmentStream 文本片段流
// Recv 在正常结束时返回 io.EOF；Close 可重复调用
type FragmentStream interface {
	Recv() (string, error)
	Close()
}
