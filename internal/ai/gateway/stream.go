package gateway

import (
	"context"
	"errors"
	"io"
)

// StreamChunk 流式回复的一次完整快照（不是增量）
type StreamChunk struct {
	Text     string    `json:"text"`    // 去掉选项标记后的正文
	Choices  []string  `json:"choices"` // 目前为止已闭合的选项
	Raw      string    `json:"-"`       // 累计的原始文本，用于写入对话记录
	Final    bool      `json:"final"`
	Degraded bool      `json:"degraded,omitempty"`
	Reason   ErrorKind `json:"reason,omitempty"`
}

// StreamReply 发起一次流式对话
//
// 每收到一个片段就发布一次快照，最后一个快照 Final 为 true。
// 中途失败时最后一个快照是兜底文案（Degraded，无选项），调用方不应提交这一轮。
// 取消 ctx 即放弃该流：生产者随即退出，之后不会再发送任何快照，channel 被关闭。
// 返回的 channel 只能消费一次。
func (g *Gateway) StreamReply(ctx context.Context, req GenerationRequest, fallback Fallback) <-chan StreamChunk {
	out := make(chan StreamChunk)

	go func() {
		defer close(out)
		g.stream(ctx, req, fallback, out)
	}()

	return out
}

func (g *Gateway) stream(ctx context.Context, req GenerationRequest, fallback Fallback, out chan<- StreamChunk) {
	fail := func(failure any) {
		if ctx.Err() != nil {
			return
		}
		result := g.degrade(req.Feature, fallback, failure)
		emit(ctx, out, StreamChunk{
			Text:     result.Text,
			Choices:  []string{},
			Final:    true,
			Degraded: true,
			Reason:   result.Reason,
		})
	}

	defer func() {
		if r := recover(); r != nil {
			fail(r)
		}
	}()

	if g.backend == nil {
		fail(errNoBackend)
		return
	}

	session, err := g.backend.NewSession(ctx, req.History.Clone(), req.SystemInstruction)
	if err != nil {
		fail(err)
		return
	}

	fragments, err := session.SendStream(ctx, req.Prompt)
	if err != nil {
		fail(err)
		return
	}
	defer fragments.Close()

	parser := NewChoiceParser()
	for {
		fragment, err := fragments.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fail(err)
			return
		}

		parser.Feed(fragment)
		if !emit(ctx, out, snapshot(parser, false)) {
			return
		}
	}

	emit(ctx, out, snapshot(parser, true))
}

func snapshot(p *ChoiceParser, final bool) StreamChunk {
	choices := p.Choices()
	if choices == nil {
		choices = []string{}
	}
	return StreamChunk{
		Text:    p.Text(),
		Choices: choices,
		Raw:     p.Raw(),
		Final:   final,
	}
}

// emit 发送快照；调用方已放弃时返回 false
func emit(ctx context.Context, out chan<- StreamChunk, chunk StreamChunk) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case out <- chunk:
		return true
	}
}
