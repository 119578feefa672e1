package backend

import (
	"context"
	"io"
	"strings"

	"cosmoconnect/internal/ai/gateway"
	dm "cosmoconnect/internal/model"
)

const (
	mockReply = "Wowzers! Space is full of surprises, and you just found one! This is a practice answer while my real brain is offline. 🚀"

	mockStorySegment = "FWOOM! Sunny the Solar Flare feels energy bubbling up from deep inside the Sun. " +
		"Something exciting is about to happen!\n" +
		"[CHOICE 1: Zoom toward planet Earth]\n" +
		"[CHOICE 2: Race a speedy comet]"
)

// Mock 离线开发用的后端
// 未配置 API key 时使用，返回固定文本
type Mock struct{}

// NewMock 创建 Mock 后端
func NewMock() *Mock {
	return &Mock{}
}

// Generate 返回固定回复
func (m *Mock) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return mockReply, nil
}

// NewSession 创建会话
func (m *Mock) NewSession(ctx context.Context, history dm.Transcript, systemInstruction string) (gateway.Session, error) {
	storyteller := strings.Contains(systemInstruction, "[CHOICE 1:")
	return &mockSession{storyteller: storyteller}, nil
}

type mockSession struct {
	storyteller bool
}

func (s *mockSession) reply() string {
	if s.storyteller {
		return mockStorySegment
	}
	return mockReply
}

func (s *mockSession) Send(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.reply(), nil
}

// SendStream 按词切分固定回复
func (s *mockSession) SendStream(ctx context.Context, message string) (gateway.FragmentStream, error) {
	return &mockStream{ctx: ctx, fragments: splitKeep(s.reply())}, nil
}

type mockStream struct {
	ctx       context.Context
	fragments []string
}

func (s *mockStream) Recv() (string, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if len(s.fragments) == 0 {
		return "", io.EOF
	}
	f := s.fragments[0]
	s.fragments = s.fragments[1:]
	return f, nil
}

func (s *mockStream) Close() {}

// splitKeep 按空格切分并保留分隔符，拼接后与原文一致
func splitKeep(text string) []string {
	return strings.SplitAfter(text, " ")
}
