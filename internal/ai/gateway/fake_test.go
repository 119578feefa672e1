package gateway

import (
	"context"
	"io"
	"sync"

	"cosmoconnect/internal/model"
)

// fakeBackend 按脚本返回结果的后端
type fakeBackend struct {
	mu sync.Mutex

	text       string
	err        error
	panicWith  any
	sessionErr error

	fragments []string
	streamErr error // 片段发完后返回的错误，nil 表示 io.EOF
	block     bool  // 片段发完后阻塞直到 ctx 结束

	generateCalls int
	sessionCalls  int
	sendCalls     int
	gotPrompt     string
	gotSystem     string
	gotHistory    model.Transcript
	streams       []*fakeStream
}

func (b *fakeBackend) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	b.mu.Lock()
	b.generateCalls++
	b.gotPrompt = prompt
	b.gotSystem = systemInstruction
	b.mu.Unlock()

	if b.panicWith != nil {
		panic(b.panicWith)
	}
	return b.text, b.err
}

func (b *fakeBackend) NewSession(ctx context.Context, history model.Transcript, systemInstruction string) (Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessionCalls++
	b.gotSystem = systemInstruction
	b.gotHistory = history
	// 后端可能改写拿到的历史，调用方的记录不应受影响
	if len(history) > 0 {
		history[0].Text = "mutated by backend"
	}
	if b.sessionErr != nil {
		return nil, b.sessionErr
	}
	return &fakeSession{backend: b}, nil
}

type fakeSession struct {
	backend *fakeBackend
}

func (s *fakeSession) Send(ctx context.Context, message string) (string, error) {
	b := s.backend
	b.mu.Lock()
	b.sendCalls++
	b.gotPrompt = message
	b.mu.Unlock()

	if b.panicWith != nil {
		panic(b.panicWith)
	}
	return b.text, b.err
}

func (s *fakeSession) SendStream(ctx context.Context, message string) (FragmentStream, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sendCalls++
	b.gotPrompt = message
	if b.err != nil {
		return nil, b.err
	}
	st := &fakeStream{
		ctx:       ctx,
		fragments: append([]string(nil), b.fragments...),
		tailErr:   b.streamErr,
		block:     b.block,
		panicWith: b.panicWith,
	}
	b.streams = append(b.streams, st)
	return st, nil
}

type fakeStream struct {
	ctx       context.Context
	fragments []string
	tailErr   error
	block     bool
	panicWith any

	mu     sync.Mutex
	closed bool
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.fragments) > 0 {
		f := s.fragments[0]
		s.fragments = s.fragments[1:]
		return f, nil
	}
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.block {
		<-s.ctx.Done()
		return "", s.ctx.Err()
	}
	if s.tailErr != nil {
		return "", s.tailErr
	}
	return "", io.EOF
}

func (s *fakeStream) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *fakeStream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func collect(ch <-chan StreamChunk) []StreamChunk {
	var chunks []StreamChunk
	for c := range ch {
		chunks = append(chunks, c)
	}
	return chunks
}
