package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"cosmoconnect/internal/ai/gateway"
	dm "cosmoconnect/internal/model"
)

var errEmptyMessage = errors.New("chat model returned no message")

// Eino 基于 Eino ChatModel 的后端（openai / azure / ark）
// ChatModel 由 ai/component.NewChatModel 创建
type Eino struct {
	chatModel model.BaseChatModel
}

// NewEino 创建 Eino 后端
func NewEino(chatModel model.BaseChatModel) *Eino {
	return &Eino{chatModel: chatModel}
}

// Generate 一次性生成
func (e *Eino) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	return e.generate(ctx, buildMessages(systemInstruction, nil, prompt))
}

// NewSession 创建会话；Eino 模型无状态，会话只是历史和系统指令的组合
func (e *Eino) NewSession(ctx context.Context, history dm.Transcript, systemInstruction string) (gateway.Session, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}
	return &einoSession{
		backend: e,
		system:  systemInstruction,
		history: history,
	}, nil
}

func (e *Eino) generate(ctx context.Context, messages []*schema.Message) (string, error) {
	resp, err := e.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("eino generate: %w", err)
	}
	if resp == nil {
		return "", errEmptyMessage
	}
	return resp.Content, nil
}

type einoSession struct {
	backend *Eino
	system  string
	history dm.Transcript
}

// Send 发送消息
func (s *einoSession) Send(ctx context.Context, message string) (string, error) {
	return s.backend.generate(ctx, buildMessages(s.system, s.history, message))
}

// SendStream 流式发送消息
func (s *einoSession) SendStream(ctx context.Context, message string) (gateway.FragmentStream, error) {
	reader, err := s.backend.chatModel.Stream(ctx, buildMessages(s.system, s.history, message))
	if err != nil {
		return nil, fmt.Errorf("eino stream: %w", err)
	}
	return &einoStream{reader: reader}, nil
}

type einoStream struct {
	reader *schema.StreamReader[*schema.Message]
}

// Recv 读取下一个片段，结束时返回 io.EOF
func (s *einoStream) Recv() (string, error) {
	msg, err := s.reader.Recv()
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", nil
	}
	return msg.Content, nil
}

// Close 关闭底层流
func (s *einoStream) Close() {
	s.reader.Close()
}

// buildMessages 系统指令 + 历史 + 新消息
func buildMessages(system string, history dm.Transcript, message string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	if system != "" {
		messages = append(messages, schema.SystemMessage(system))
	}
	for _, turn := range history {
		switch turn.Role {
		case dm.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		default:
			messages = append(messages, schema.UserMessage(turn.Text))
		}
	}
	return append(messages, schema.UserMessage(message))
}
