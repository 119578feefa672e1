package service

import (
	"context"
	"errors"
	"sync"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/model"
)

// fakeGenerator 记录请求，按脚本返回结果
type fakeGenerator struct {
	mu       sync.Mutex
	result   gateway.Result
	chunks   []gateway.StreamChunk
	requests []gateway.GenerationRequest
	fallback gateway.Fallback
}

func (g *fakeGenerator) Invoke(ctx context.Context, req gateway.GenerationRequest, fallback gateway.Fallback) gateway.Result {
	g.record(req, fallback)
	return g.result
}

func (g *fakeGenerator) StreamReply(ctx context.Context, req gateway.GenerationRequest, fallback gateway.Fallback) <-chan gateway.StreamChunk {
	g.record(req, fallback)
	out := make(chan gateway.StreamChunk, len(g.chunks))
	for _, c := range g.chunks {
		out <- c
	}
	close(out)
	return out
}

func (g *fakeGenerator) record(req gateway.GenerationRequest, fallback gateway.Fallback) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	g.fallback = fallback
}

func (g *fakeGenerator) last() gateway.GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

// memTranscripts 内存对话记录
type memTranscripts struct {
	mu      sync.Mutex
	data    map[string]map[string]model.Transcript
	loadErr error
	saves   int
}

func newMemTranscripts() *memTranscripts {
	return &memTranscripts{data: map[string]map[string]model.Transcript{}}
}

func (m *memTranscripts) Load(ctx context.Context, sessionID, feature string) (model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[sessionID][feature].Clone(), nil
}

func (m *memTranscripts) Save(ctx context.Context, sessionID, feature string, t model.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[sessionID] == nil {
		m.data[sessionID] = map[string]model.Transcript{}
	}
	m.data[sessionID][feature] = t.Clone()
	m.saves++
	return nil
}

func (m *memTranscripts) Exists(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[sessionID]
	return ok, nil
}

func (m *memTranscripts) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *memTranscripts) get(sessionID, feature string) model.Transcript {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[sessionID][feature]
}

// memExplorers 内存成就存储
type memExplorers struct {
	mu        sync.Mutex
	explorers map[string]*model.Explorer
	err       error
}

func newMemExplorers() *memExplorers {
	return &memExplorers{explorers: map[string]*model.Explorer{}}
}

func (m *memExplorers) FindByID(ctx context.Context, id string) (*model.Explorer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.explorers[id], nil
}

func (m *memExplorers) AddAchievement(ctx context.Context, id, achievementID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	e, ok := m.explorers[id]
	if !ok {
		e = &model.Explorer{ID: id}
		m.explorers[id] = e
	}
	if e.HasAchievement(achievementID) {
		return false, nil
	}
	e.Achievements = append(e.Achievements, achievementID)
	return true, nil
}

// fakeSpace 固定的 NASA 数据
type fakeSpace struct {
	apod model.APOD
	cmes []model.CME
}

func (f *fakeSpace) APOD(ctx context.Context, random bool) model.APOD { return f.apod }
func (f *fakeSpace) RecentCMEs(ctx context.Context) []model.CME    { return f.cmes }

var errStoreDown = errors.New("redis: connection refused")
